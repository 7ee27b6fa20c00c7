package store

import (
	"context"                 // Request scoped cancellation
	"errors"                  // Error inspection
	"fmt"                     // Error wrapping
	"ideahub/internal/domain" // Importing domain models

	"gorm.io/gorm" // ORM
)

// SubmitIdea creates an idea for userID and removes that user's draft in the same transaction
func (s *Store) SubmitIdea(ctx context.Context, userID uint, title, content string, imageFilename *string) (*domain.Idea, error) {
	idea := domain.Idea{
		Title:         title,         // Idea title
		Content:       content,       // Idea body
		UserID:        userID,        // Author
		ImageFilename: imageFilename, // Optional upload
	}
	// Both writes commit or neither does
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&idea).Error; err != nil {
			return fmt.Errorf("create idea: %w", err)
		}
		// Submission supersedes the draft
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Draft{}).Error; err != nil {
			return fmt.Errorf("delete draft: %w", err)
		}
		return nil // Commit transaction
	})
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// ListIdeas returns every idea with its author, newest first
func (s *Store) ListIdeas(ctx context.Context) ([]domain.Idea, error) {
	var ideas []domain.Idea // All ideas
	err := s.db.WithContext(ctx).
		Preload("User").          // Load authors
		Order("created_at desc"). // Newest first
		Order("id desc").         // Stable among equal timestamps
		Find(&ideas).Error
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return ideas, nil
}

// GetIdea returns one idea with its author or ErrNotFound
func (s *Store) GetIdea(ctx context.Context, id uint) (*domain.Idea, error) {
	var idea domain.Idea // Idea record
	err := s.db.WithContext(ctx).Preload("User").First(&idea, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	return &idea, nil
}
