package db

import (
	"testing"

	"library_lending_api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_IsBorrowedFilter(t *testing.T) {
	r := newTestRepo(t)
	u := seedUser(t, r, "alice@example.com")
	a := seedAuthor(t, r, "Ray Bradbury")
	b1 := seedBook(t, r, a.ID, "Fahrenheit 451")
	seedBook(t, r, a.ID, "The Martian Chronicles")
	seedBook(t, r, a.ID, "Dandelion Wine")

	rec, err := r.BorrowBook(t.Context(), u.ID, b1.ID)
	require.NoError(t, err)

	borrowed := true
	rows, err := r.ListBooks(t.Context(), BookFilter{IsBorrowed: &borrowed})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, b1.ID, rows[0].ID)
	assert.True(t, rows[0].IsBorrowed)
	// the open record id is what return() needs
	require.NotNil(t, rows[0].OpenRecord)
	assert.Equal(t, rec.ID, rows[0].OpenRecord.ID)

	available := false
	rows, err = r.ListBooks(t.Context(), BookFilter{IsBorrowed: &available})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.False(t, row.IsBorrowed)
		assert.Nil(t, row.OpenRecord)
	}

	// no restriction
	rows, err = r.ListBooks(t.Context(), BookFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestListBooks_AuthorFilterAndEmbeddedAuthor(t *testing.T) {
	r := newTestRepo(t)
	a1 := seedAuthor(t, r, "Italo Calvino")
	a2 := seedAuthor(t, r, "Jorge Luis Borges")
	seedBook(t, r, a1.ID, "Invisible Cities")
	seedBook(t, r, a2.ID, "Ficciones")

	rows, err := r.ListBooks(t.Context(), BookFilter{AuthorID: a1.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Invisible Cities", rows[0].Title)
	require.NotNil(t, rows[0].Author)
	assert.Equal(t, "Italo Calvino", rows[0].Author.Name)
}

func TestCreateBook_AuthorMustExist(t *testing.T) {
	r := newTestRepo(t)
	b := &models.Book{ID: uuid.NewString(), Title: "Orphan", AuthorID: uuid.NewString()}
	err := r.CreateBook(t.Context(), b)
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestFindBookByID_WithOpenRecord(t *testing.T) {
	r := newTestRepo(t)
	u := seedUser(t, r, "alice@example.com")
	a := seedAuthor(t, r, "Stanisław Lem")
	b := seedBook(t, r, a.ID, "Solaris")

	row, err := r.FindBookByID(t.Context(), b.ID)
	require.NoError(t, err)
	assert.False(t, row.IsBorrowed)

	rec, err := r.BorrowBook(t.Context(), u.ID, b.ID)
	require.NoError(t, err)

	row, err = r.FindBookByID(t.Context(), b.ID)
	require.NoError(t, err)
	assert.True(t, row.IsBorrowed)
	require.NotNil(t, row.OpenRecord)
	assert.Equal(t, rec.ID, row.OpenRecord.ID)

	_, err = r.FindBookByID(t.Context(), uuid.NewString())
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestUpdateBook(t *testing.T) {
	r := newTestRepo(t)
	a := seedAuthor(t, r, "Frank Herbert")
	b := seedBook(t, r, a.ID, "Dnue")

	row, err := r.UpdateBook(t.Context(), b.ID, map[string]any{"title": "Dune", "published_year": 1965})
	require.NoError(t, err)
	assert.Equal(t, "Dune", row.Title)
	require.NotNil(t, row.PublishedYear)
	assert.Equal(t, 1965, *row.PublishedYear)

	_, err = r.UpdateBook(t.Context(), uuid.NewString(), map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrBookNotFound)

	// reassigning to an unknown author is refused
	_, err = r.UpdateBook(t.Context(), b.ID, map[string]any{"author_id": uuid.NewString()})
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestDeleteBook_OpenRecordConflict(t *testing.T) {
	r := newTestRepo(t)
	u := seedUser(t, r, "alice@example.com")
	a := seedAuthor(t, r, "Mary Shelley")
	b := seedBook(t, r, a.ID, "Frankenstein")

	rec, err := r.BorrowBook(t.Context(), u.ID, b.ID)
	require.NoError(t, err)

	err = r.DeleteBook(t.Context(), b.ID)
	assert.ErrorIs(t, err, ErrOpenBorrowRecords)

	_, err = r.ReturnBook(t.Context(), rec.ID)
	require.NoError(t, err)
	require.NoError(t, r.DeleteBook(t.Context(), b.ID))

	_, err = r.FindBookByID(t.Context(), b.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestAuthorCRUD(t *testing.T) {
	r := newTestRepo(t)
	a := seedAuthor(t, r, "Har Lee")

	bio := "American novelist"
	got, err := r.UpdateAuthor(t.Context(), a.ID, map[string]any{"name": "Harper Lee", "bio": bio})
	require.NoError(t, err)
	assert.Equal(t, "Harper Lee", got.Name)
	require.NotNil(t, got.Bio)
	assert.Equal(t, bio, *got.Bio)

	authors, err := r.ListAuthors(t.Context())
	require.NoError(t, err)
	assert.Len(t, authors, 1)

	require.NoError(t, r.DeleteAuthor(t.Context(), a.ID))
	_, err = r.FindAuthorByID(t.Context(), a.ID)
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestDeleteAuthor_WithBooksConflict(t *testing.T) {
	r := newTestRepo(t)
	a := seedAuthor(t, r, "George Orwell")
	seedBook(t, r, a.ID, "1984")

	err := r.DeleteAuthor(t.Context(), a.ID)
	assert.ErrorIs(t, err, ErrAuthorHasBooks)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	seedUser(t, r, "alice@example.com")

	dup := &models.User{ID: uuid.NewString(), Email: "alice@example.com", Name: "Alice 2", PasswordHash: "x"}
	err := r.CreateUser(t.Context(), dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteUser_OpenRecordConflict(t *testing.T) {
	r := newTestRepo(t)
	u := seedUser(t, r, "alice@example.com")
	a := seedAuthor(t, r, "Emily Brontë")
	b := seedBook(t, r, a.ID, "Wuthering Heights")

	rec, err := r.BorrowBook(t.Context(), u.ID, b.ID)
	require.NoError(t, err)

	err = r.DeleteUser(t.Context(), u.ID)
	assert.ErrorIs(t, err, ErrOpenBorrowRecords)

	_, err = r.ReturnBook(t.Context(), rec.ID)
	require.NoError(t, err)
	require.NoError(t, r.DeleteUser(t.Context(), u.ID))

	err = r.DeleteUser(t.Context(), u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
