// controllers/book_controller.go
package controllers

import (
	"net/http"

	"library_lending_api/app"
	"library_lending_api/db"
	"library_lending_api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookController struct{ repo *db.Repo }

func NewBookController(repo *db.Repo) *BookController {
	return &BookController{repo: repo}
}

// POST /api/books
func (bc *BookController) CreateBook(c *gin.Context) {
	var in struct {
		Title         string  `json:"title" binding:"required"`
		Description   *string `json:"description"`
		PublishedYear *int    `json:"publishedYear"`
		AuthorID      string  `json:"authorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b := &models.Book{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		PublishedYear: in.PublishedYear,
		AuthorID:      in.AuthorID,
	}
	if err := bc.repo.CreateBook(c.Request.Context(), b); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /api/books?authorId=&isBorrowed=true|false
func (bc *BookController) ListBooks(c *gin.Context) {
	f := db.BookFilter{AuthorID: c.Query("authorId")}
	switch c.Query("isBorrowed") {
	case "true":
		v := true
		f.IsBorrowed = &v
	case "false":
		v := false
		f.IsBorrowed = &v
	}

	books, err := bc.repo.ListBooks(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"books": books})
}

// GET /api/books/:id
func (bc *BookController) GetBook(c *gin.Context) {
	b, err := bc.repo.FindBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PATCH /api/books/:id
func (bc *BookController) UpdateBook(c *gin.Context) {
	var in struct {
		Title         *string `json:"title"`
		Description   *string `json:"description"`
		PublishedYear *int    `json:"publishedYear"`
		AuthorID      *string `json:"authorId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.PublishedYear != nil {
		fields["published_year"] = *in.PublishedYear
	}
	if in.AuthorID != nil {
		fields["author_id"] = *in.AuthorID
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "nothing to update"})
		return
	}
	b, err := bc.repo.UpdateBook(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/books/:id
func (bc *BookController) DeleteBook(c *gin.Context) {
	if err := bc.repo.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
