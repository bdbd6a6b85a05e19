// db/repo_book.go
package db

import (
	"context"
	"errors"
	"fmt"

	"library_lending_api/models"

	"gorm.io/gorm"
)

// BookWithStatus is a Book plus its derived lending state. IsBorrowed is
// computed from the open record, never stored.
type BookWithStatus struct {
	models.Book
	IsBorrowed bool                 `json:"isBorrowed"`
	OpenRecord *models.BorrowRecord `json:"openRecord,omitempty"`
}

type BookFilter struct {
	AuthorID   string // "" = any author
	IsBorrowed *bool  // nil = no restriction
}

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Author
		if err := tx.First(&a, "id = ?", b.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorNotFound
			}
			return err
		}
		return tx.Create(b).Error
	})
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*BookWithStatus, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).Preload("Author").First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	row := BookWithStatus{Book: b}
	open, err := r.openRecordForBook(ctx, id)
	if err != nil {
		return nil, err
	}
	row.OpenRecord = open
	row.IsBorrowed = open != nil
	return &row, nil
}

// ListBooks returns books newest first, each with its author and, if out
// on loan, the open record (the record id is what return() needs).
func (r *Repo) ListBooks(ctx context.Context, f BookFilter) ([]BookWithStatus, error) {
	openExists := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s br WHERE br.book_id = %s.id AND br.returned_at IS NULL)",
		models.BorrowTable, models.BookTable,
	)

	q := r.DB.WithContext(ctx).Model(&models.Book{}).Preload("Author")
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.IsBorrowed != nil {
		if *f.IsBorrowed {
			q = q.Where(openExists)
		} else {
			q = q.Where("NOT " + openExists)
		}
	}

	var books []models.Book
	if err := q.Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return []BookWithStatus{}, nil
	}

	ids := make([]string, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	var open []models.BorrowRecord
	if err := r.DB.WithContext(ctx).
		Where("book_id IN ? AND returned_at IS NULL", ids).
		Find(&open).Error; err != nil {
		return nil, err
	}
	// 部分唯一索引保证每本书至多一条 open
	byBook := make(map[string]*models.BorrowRecord, len(open))
	for i := range open {
		byBook[open[i].BookID] = &open[i]
	}

	rows := make([]BookWithStatus, len(books))
	for i := range books {
		rec := byBook[books[i].ID]
		rows[i] = BookWithStatus{Book: books[i], IsBorrowed: rec != nil, OpenRecord: rec}
	}
	return rows, nil
}

func (r *Repo) UpdateBook(ctx context.Context, id string, fields map[string]any) (*BookWithStatus, error) {
	if authorID, ok := fields["author_id"].(string); ok {
		if _, err := r.FindAuthorByID(ctx, authorID); err != nil {
			return nil, err
		}
	}
	tx := r.DB.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrBookNotFound
	}
	return r.FindBookByID(ctx, id)
}

// DeleteBook refuses while the book is out on loan (open-question call:
// explicit conflict rather than cascade, see DESIGN.md).
func (r *Repo) DeleteBook(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		var n int64
		if err := tx.Model(&models.BorrowRecord{}).
			Where("book_id = ? AND returned_at IS NULL", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrOpenBorrowRecords
		}
		return tx.Delete(&models.Book{}, "id = ?", id).Error
	})
}

func (r *Repo) openRecordForBook(ctx context.Context, bookID string) (*models.BorrowRecord, error) {
	var rec models.BorrowRecord
	err := r.DB.WithContext(ctx).
		Where("book_id = ? AND returned_at IS NULL", bookID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
