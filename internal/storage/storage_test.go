package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{`..\..\windows\system32`, "windows_system32"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"café.png", "cafe.png"},
		{"CON.txt", "_CON.txt"},
		{".hidden", "hidden"},
		{"a<b>c|d?.jpg", "abcd.jpg"},
		{"...", ""},
		{"图片.png", "png"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestIsSafeName(t *testing.T) {
	assert.True(t, IsSafeName("photo.png"))
	assert.False(t, IsSafeName(""))
	assert.False(t, IsSafeName("../photo.png"))
	assert.False(t, IsSafeName("a/b.png"))
	assert.False(t, IsSafeName(strings.Repeat("a", MaxNameLength+1)))
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("photo.png")
	b := UniqueName("photo.png")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "_photo.png"))
	assert.True(t, IsSafeName(a))

	long := UniqueName(strings.Repeat("x", 300) + ".jpeg")
	assert.LessOrEqual(t, len(long), MaxNameLength)
	assert.True(t, strings.HasSuffix(long, ".jpeg"))
	assert.True(t, IsSafeName(long))

	assert.Equal(t, "", UniqueName("../.."))
}

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "hello.txt", strings.NewReader("hi there"), 8, "text/plain"))

	obj, err := s.Open(ctx, "hello.txt")
	require.NoError(t, err)
	defer obj.Body.Close()
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(body))
	assert.EqualValues(t, 8, obj.Size)
	assert.Contains(t, obj.ContentType, "text/plain")

	_, err = s.Open(ctx, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorageStaysInDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o600))

	_, err = s.Open(context.Background(), "../secret.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}
