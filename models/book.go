// models/book.go
package models

import "time"

const (
	UserTable   = "lib_users"
	AuthorTable = "lib_authors"
	BookTable   = "lib_books"
	BorrowTable = "lib_borrow_records"
)

type Author struct {
	ID   string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name string  `gorm:"size:255;not null" json:"name"`
	Bio  *string `gorm:"type:text" json:"bio,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Books []Book `gorm:"foreignKey:AuthorID" json:"-"`
}

// Book carries no stored "borrowed" flag. Whether a book is out on loan is
// derived from its open BorrowRecord at read time.
type Book struct {
	ID            string  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string  `gorm:"size:255;not null" json:"title"`
	Description   *string `gorm:"type:text" json:"description,omitempty"`
	PublishedYear *int    `json:"publishedYear,omitempty"`
	AuthorID      string  `gorm:"type:uuid;index;not null" json:"authorId"`

	Author *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Author) TableName() string { return AuthorTable }
func (Book) TableName() string   { return BookTable }
