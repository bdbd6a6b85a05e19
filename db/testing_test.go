package db

import (
	"path/filepath"
	"testing"

	"library_lending_api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	conn, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "library.db")),
		&gorm.Config{
			TranslateError:                           true,
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedUser(t *testing.T, r *Repo, email string) *models.User {
	t.Helper()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Test Librarian",
		PasswordHash: "x",
	}
	require.NoError(t, r.CreateUser(t.Context(), u))
	return u
}

func seedAuthor(t *testing.T, r *Repo, name string) *models.Author {
	t.Helper()
	a := &models.Author{ID: uuid.NewString(), Name: name}
	require.NoError(t, r.CreateAuthor(t.Context(), a))
	return a
}

func seedBook(t *testing.T, r *Repo, authorID, title string) *models.Book {
	t.Helper()
	b := &models.Book{ID: uuid.NewString(), Title: title, AuthorID: authorID}
	require.NoError(t, r.CreateBook(t.Context(), b))
	return b
}

func countOpenForBook(t *testing.T, r *Repo, bookID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.DB.Model(&models.BorrowRecord{}).
		Where("book_id = ? AND returned_at IS NULL", bookID).
		Count(&n).Error)
	return n
}
