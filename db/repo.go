package db

import (
	"context"
	"errors"
	"time"

	"library_lending_api/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(conn *gorm.DB) *Repo { return &Repo{DB: conn} }

// 错误分类：controller 层据此映射 404 / 409
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrRecordNotFound = errors.New("borrow record not found")

	ErrBookAlreadyBorrowed   = errors.New("book is already borrowed")
	ErrRecordAlreadyReturned = errors.New("book already returned")

	ErrEmailTaken        = errors.New("email already registered")
	ErrOpenBorrowRecords = errors.New("entity has open borrow records")
	ErrAuthorHasBooks    = errors.New("author still has books")
)

// Users

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// DeleteUser refuses while the user still holds books: the ledger is
// append-only and cascading would orphan open rows.
func (r *Repo) DeleteUser(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		var n int64
		if err := tx.Model(&models.BorrowRecord{}).
			Where("user_id = ? AND returned_at IS NULL", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrOpenBorrowRecords
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", now).Error
}
