package models

import (
	"time"
)

// User is a registered librarian account. PasswordHash is a bcrypt digest
// and never leaves the server.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string `gorm:"size:255;not null" json:"name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	LastSeenAt *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	BorrowRecords []BorrowRecord `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return UserTable }
