// controllers/borrow_controller.go
package controllers

import (
	"net/http"

	"library_lending_api/app"
	"library_lending_api/db"

	"github.com/gin-gonic/gin"
)

type BorrowController struct{ repo *db.Repo }

func NewBorrowController(repo *db.Repo) *BorrowController {
	return &BorrowController{repo: repo}
}

// POST /api/borrow
func (bc *BorrowController) Borrow(c *gin.Context) {
	var in struct {
		UserID string `json:"userId" binding:"required"`
		BookID string `json:"bookId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	rec, err := bc.repo.BorrowBook(c.Request.Context(), in.UserID, in.BookID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// POST /api/borrow/:id/return
func (bc *BorrowController) Return(c *gin.Context) {
	recordID := c.Param("id")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing record id"})
		return
	}

	rec, err := bc.repo.ReturnBook(c.Request.Context(), recordID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GET /api/users/:id/borrowed?active=true
func (bc *BorrowController) ListBorrowed(c *gin.Context) {
	userID := c.Param("id")
	activeOnly := c.Query("active") == "true"

	recs, err := bc.repo.ListBorrowedForUser(c.Request.Context(), userID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"records": recs})
}
