package controllers

import (
	"errors"
	"net/http"

	"library_lending_api/app"
	"library_lending_api/db"

	"github.com/gin-gonic/gin"
)

// writeErr maps repo errors onto the API taxonomy: missing entity → 404,
// invariant violation → 409, anything else → 500.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrBookNotFound),
		errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrAuthorNotFound),
		errors.Is(err, db.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrBookAlreadyBorrowed),
		errors.Is(err, db.ErrRecordAlreadyReturned),
		errors.Is(err, db.ErrEmailTaken),
		errors.Is(err, db.ErrOpenBorrowRecords),
		errors.Is(err, db.ErrAuthorHasBooks):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
