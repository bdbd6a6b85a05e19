package controllers

import (
	"net/http"

	"library_lending_api/app"
	"library_lending_api/db"
	"library_lending_api/models"
	"library_lending_api/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	repo    *db.Repo
	appSess *session.Store
}

func GetUserController(repo *db.Repo, appSess *session.Store) *UserController {
	return &UserController{repo: repo, appSess: appSess}
}

// GET /api/users
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.repo.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"users": users})
}

// POST /api/users — admin-side creation, same shape as register but no token
func (uc *UserController) CreateUser(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
	}
	if err := uc.repo.CreateUser(c.Request.Context(), u); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}

// GET /api/users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid uuid"})
		return
	}
	u, err := uc.repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	// 不允许删除自己，避免锁死
	if v, ok := c.Get("userID"); ok {
		if uid, _ := v.(string); uid == id {
			c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete yourself"})
			return
		}
	}

	if err := uc.repo.DeleteUser(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	// 撤销该用户的所有登录会话
	_ = uc.appSess.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
