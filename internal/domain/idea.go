package domain

import "time"

// MaxTitleLength is the width of the Idea and Draft title columns
const MaxTitleLength = 200

// Idea Model, immutable once created
type Idea struct {
	ID            uint      `gorm:"primaryKey"`                                                      // Primary key
	Title         string    `gorm:"size:200;not null"`                                               // Idea title
	Content       string    `gorm:"type:text;not null"`                                              // Full idea body
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`                                            // Server-assigned creation time
	UserID        uint      `gorm:"not null;index"`                                                  // Foreign key to User
	User          *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Author, removed with its ideas
	ImageFilename *string   `gorm:"size:100"`                                                        // Optional stored upload name
}
