package domain

// Column widths of User. The username defaults to the email, so both share one width.
const (
	MaxUsernameLength = 120
	MaxEmailLength    = 120
)

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey"`                    // Primary key
	Username     string `gorm:"size:120;uniqueIndex;not null"` // Unique username
	Email        string `gorm:"size:120;uniqueIndex;not null"` // Unique email, the token subject
	PasswordHash string `gorm:"size:256;not null"`             // Bcrypt hash
	Ideas        []Idea                                        // One-to-many relationship with Idea
	Draft        *Draft                                        // One-to-one relationship with Draft
}
