// db/repo_borrow.go
package db

import (
	"context"
	"errors"
	"time"

	"library_lending_api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BorrowBook opens a new borrow record for the book. Check order is fixed:
// book existence, then borrowed state, then user existence. The whole
// sequence runs in one transaction and the partial unique index on
// (book_id) WHERE returned_at IS NULL backstops concurrent borrows: the
// loser's insert fails and surfaces as ErrBookAlreadyBorrowed.
func (r *Repo) BorrowBook(ctx context.Context, userID, bookID string) (*models.BorrowRecord, error) {
	var rec *models.BorrowRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.First(&book, "id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		var n int64
		if err := tx.Model(&models.BorrowRecord{}).
			Where("book_id = ? AND returned_at IS NULL", bookID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrBookAlreadyBorrowed
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		l := &models.BorrowRecord{
			ID:         uuid.NewString(),
			UserID:     userID,
			BookID:     bookID,
			BorrowedAt: time.Now().UTC(),
		}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrBookAlreadyBorrowed
			}
			return err
		}
		rec = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ReturnBook closes an open record. Double return is a conflict, not a
// no-op, so callers can tell a stale click from a real return.
func (r *Repo) ReturnBook(ctx context.Context, recordID string) (*models.BorrowRecord, error) {
	var rec models.BorrowRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", recordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		if rec.ReturnedAt != nil {
			return ErrRecordAlreadyReturned
		}
		now := time.Now().UTC()
		rec.ReturnedAt = &now
		return tx.Model(&models.BorrowRecord{}).
			Where("id = ?", rec.ID).
			Update("returned_at", now).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListBorrowedForUser returns the user's records, most recent first, each
// with its book and the book's author. An unknown user yields an empty
// list on purpose.
func (r *Repo) ListBorrowedForUser(ctx context.Context, userID string, activeOnly bool) ([]models.BorrowRecord, error) {
	q := r.DB.WithContext(ctx).
		Preload("Book").Preload("Book.Author").
		Where("user_id = ?", userID).
		Order("borrowed_at DESC")
	if activeOnly {
		q = q.Where("returned_at IS NULL")
	}
	var recs []models.BorrowRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
