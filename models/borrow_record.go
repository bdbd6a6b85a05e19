// models/borrow_record.go
package models

import "time"

// BorrowRecord is the lending ledger: one row per borrow event, closed by
// setting ReturnedAt. Rows are never deleted. At most one open row may
// exist per book; the partial unique index created in db.Migrate enforces
// that in the store itself.
type BorrowRecord struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`
	BookID string `gorm:"type:uuid;index;not null" json:"bookId"`

	BorrowedAt time.Time  `gorm:"index;not null" json:"borrowedAt"`
	ReturnedAt *time.Time `gorm:"index" json:"returnedAt,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BorrowRecord) TableName() string { return BorrowTable }

// Open reports whether the book is still out on this record.
func (r *BorrowRecord) Open() bool { return r.ReturnedAt == nil }
