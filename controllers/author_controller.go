package controllers

import (
	"net/http"

	"library_lending_api/app"
	"library_lending_api/db"
	"library_lending_api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthorController struct{ repo *db.Repo }

func NewAuthorController(repo *db.Repo) *AuthorController {
	return &AuthorController{repo: repo}
}

// POST /api/authors
func (ac *AuthorController) CreateAuthor(c *gin.Context) {
	var in struct {
		Name string  `json:"name" binding:"required"`
		Bio  *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a := &models.Author{ID: uuid.NewString(), Name: in.Name, Bio: in.Bio}
	if err := ac.repo.CreateAuthor(c.Request.Context(), a); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// GET /api/authors
func (ac *AuthorController) ListAuthors(c *gin.Context) {
	authors, err := ac.repo.ListAuthors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"authors": authors})
}

// GET /api/authors/:id
func (ac *AuthorController) GetAuthor(c *gin.Context) {
	a, err := ac.repo.FindAuthorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// PATCH /api/authors/:id
func (ac *AuthorController) UpdateAuthor(c *gin.Context) {
	var in struct {
		Name *string `json:"name"`
		Bio  *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "nothing to update"})
		return
	}
	a, err := ac.repo.UpdateAuthor(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/authors/:id
func (ac *AuthorController) DeleteAuthor(c *gin.Context) {
	if err := ac.repo.DeleteAuthor(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
