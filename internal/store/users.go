package store

import (
	"context"                 // Request scoped cancellation
	"errors"                  // Error inspection
	"fmt"                     // Error wrapping
	"ideahub/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // ORM
)

// CreateUser hashes password and inserts a user. An empty username falls back to the email.
func (s *Store) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" {
		username = email // Default username
	}
	db := s.db.WithContext(ctx)

	// Check uniqueness up front for a precise error
	if err := conflictFor(db, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost) // Hash the password
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		Username:     username,     // Username
		Email:        email,        // Email
		PasswordHash: string(hash), // Hashed password
	}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if cerr := conflictFor(db, username, email); cerr != nil {
				return nil, cerr
			}
			return nil, ErrEmailTaken // Colliding row already gone
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// conflictFor reports which unique column an existing user already holds
func conflictFor(db *gorm.DB, username, email string) error {
	var n int64 // Matching rows
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if n > 0 {
		return ErrEmailTaken
	}
	if err := db.Model(&domain.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if n > 0 {
		return ErrUsernameTaken
	}
	return nil
}

// Authenticate returns the user when email and password match, ErrNotFound otherwise.
// Unknown email and wrong password are indistinguishable.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.UserByEmail(ctx, email) // Fetch user by email
	if err != nil {
		return nil, err
	}
	// Compare the password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return user, nil
}

// UserByEmail looks a user up by the token subject
func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User // User record
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
