package domain

// Draft Model, at most one per user
type Draft struct {
	ID      uint   `gorm:"primaryKey"`                                                      // Primary key
	Title   string `gorm:"size:200"`                                                        // Draft title
	Content string `gorm:"type:text"`                                                       // Draft body
	UserID  uint   `gorm:"uniqueIndex;not null"`                                            // Foreign key to User
	User    *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Owner, removed with its draft
}
