package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ideahub/internal/domain"
	"ideahub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.SetupTestDB(t))
}

func mustUser(t *testing.T, s *Store, username, email string) *domain.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), username, email, "p")
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "", "a@x.com", "secret")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "a@x.com", u.Username, "username defaults to email")
	assert.NotEqual(t, "secret", u.PasswordHash)

	_, err = s.CreateUser(ctx, "other", "a@x.com", "secret")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.CreateUser(ctx, "a@x.com", "b@x.com", "secret")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice", "a@x.com")

	u, err := s.Authenticate(ctx, "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = s.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Authenticate(ctx, "nobody@x.com", "p")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "alice", "a@x.com")

	d, err := s.GetDraft(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, d)

	require.NoError(t, s.SaveDraft(ctx, u.ID, "t", "c"))
	require.NoError(t, s.SaveDraft(ctx, u.ID, "t2", "c2"))

	d, err = s.GetDraft(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "t2", d.Title)
	assert.Equal(t, "c2", d.Content)

	var count int64
	require.NoError(t, s.DB().Model(&domain.Draft{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "upsert must not create a second draft")

	require.NoError(t, s.DeleteDraft(ctx, u.ID))
	require.NoError(t, s.DeleteDraft(ctx, u.ID), "deleting a missing draft is a no-op")

	d, err = s.GetDraft(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestSubmitIdeaClearsOnlyOwnDraft(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice", "a@x.com")
	bob := mustUser(t, s, "bob", "b@x.com")

	require.NoError(t, s.SaveDraft(ctx, alice.ID, "t", "c"))
	require.NoError(t, s.SaveDraft(ctx, bob.ID, "bt", "bc"))

	img := "pic.png"
	idea, err := s.SubmitIdea(ctx, alice.ID, "T", "C", &img)
	require.NoError(t, err)
	assert.NotZero(t, idea.ID)
	assert.False(t, idea.CreatedAt.IsZero())

	d, err := s.GetDraft(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = s.GetDraft(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, d)

	got, err := s.GetIdea(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", got.Content)
	require.NotNil(t, got.User)
	assert.Equal(t, "alice", got.User.Username)
	require.NotNil(t, got.ImageFilename)
	assert.Equal(t, "pic.png", *got.ImageFilename)
}

func TestSubmitIdeaRollsBackWhenDraftDeleteFails(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "alice", "a@x.com")
	require.NoError(t, s.SaveDraft(ctx, u.ID, "t", "c"))

	// fail the draft delete after the idea insert has run in the same transaction
	err := s.DB().Callback().Delete().Before("gorm:delete").Register("test:fail_draft_delete", func(db *gorm.DB) {
		if db.Statement.Schema != nil && db.Statement.Schema.Table == "drafts" {
			_ = db.AddError(errors.New("draft delete failed"))
		}
	})
	require.NoError(t, err)

	_, err = s.SubmitIdea(ctx, u.ID, "T", "C", nil)
	require.Error(t, err)

	var count int64
	require.NoError(t, s.DB().Model(&domain.Idea{}).Count(&count).Error)
	assert.Zero(t, count, "idea insert must be rolled back")

	d, err := s.GetDraft(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "t", d.Title)
}

func TestSubmitIdeaUnknownUser(t *testing.T) {
	s := newStore(t)
	_, err := s.SubmitIdea(context.Background(), 9999, "T", "C", nil)
	require.Error(t, err)

	ideas, err := s.ListIdeas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestCreateUserRaceReportsColumn(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice", "a@x.com")

	// the username is claimed after the uniqueness check but before the
	// insert's transaction starts, so the claim survives the rollback
	raced := false
	err := s.DB().Callback().Create().Before("gorm:begin_transaction").Register("test:race_username", func(db *gorm.DB) {
		if raced || db.Statement.Schema == nil || db.Statement.Schema.Table != "users" {
			return
		}
		raced = true
		res := db.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE users SET username = ? WHERE email = ?", "bob", "a@x.com")
		if res.Error != nil {
			_ = db.AddError(res.Error)
		}
	})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "bob", "b@x.com", "p")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestListIdeasNewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "alice", "a@x.com")

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		idea := domain.Idea{Title: title, Content: strings.Repeat("x", 10), UserID: u.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, s.DB().Create(&idea).Error)
	}

	ideas, err := s.ListIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "third", ideas[0].Title)
	assert.Equal(t, "second", ideas[1].Title)
	assert.Equal(t, "first", ideas[2].Title)
	for _, idea := range ideas {
		require.NotNil(t, idea.User)
		assert.Equal(t, "alice", idea.User.Username)
	}
}

func TestGetIdeaNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.GetIdea(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
