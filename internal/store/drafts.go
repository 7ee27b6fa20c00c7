package store

import (
	"context"                 // Request scoped cancellation
	"errors"                  // Error inspection
	"fmt"                     // Error wrapping
	"ideahub/internal/domain" // Importing domain models

	"gorm.io/gorm"        // ORM
	"gorm.io/gorm/clause" // Upsert clause
)

// GetDraft returns the user's draft, or nil when there is none
func (s *Store) GetDraft(ctx context.Context, userID uint) (*domain.Draft, error) {
	var draft domain.Draft // Draft record
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No draft is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return &draft, nil
}

// SaveDraft overwrites the user's draft, creating it on first save
func (s *Store) SaveDraft(ctx context.Context, userID uint, title, content string) error {
	draft := domain.Draft{UserID: userID, Title: title, Content: content}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},                     // One draft per user
		DoUpdates: clause.AssignmentColumns([]string{"title", "content"}), // Overwrite on conflict
	}).Create(&draft).Error
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// DeleteDraft removes the user's draft; a missing draft is not an error
func (s *Store) DeleteDraft(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Draft{}).Error; err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
