// db/repo_author.go
package db

import (
	"context"
	"errors"

	"library_lending_api/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateAuthor(ctx context.Context, a *models.Author) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) FindAuthorByID(ctx context.Context, id string) (*models.Author, error) {
	var a models.Author
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repo) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&authors).Error
	return authors, err
}

func (r *Repo) UpdateAuthor(ctx context.Context, id string, fields map[string]any) (*models.Author, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Author{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrAuthorNotFound
	}
	return r.FindAuthorByID(ctx, id)
}

func (r *Repo) DeleteAuthor(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Author
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorNotFound
			}
			return err
		}
		var n int64
		if err := tx.Model(&models.Book{}).Where("author_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAuthorHasBooks
		}
		return tx.Delete(&models.Author{}, "id = ?", id).Error
	})
}
