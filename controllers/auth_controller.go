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

type AuthController struct {
	repo    *db.Repo
	appSess *session.Store
}

func GetAuthController(repo *db.Repo, appSess *session.Store) *AuthController {
	return &AuthController{repo: repo, appSess: appSess}
}

type userOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserOut(u *models.User) userOut {
	return userOut{ID: u.ID, Email: u.Email, Name: u.Name}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
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
	if err := ac.repo.CreateUser(c.Request.Context(), u); err != nil {
		writeErr(c, err)
		return
	}

	token, err := ac.appSess.Create(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": toUserOut(u), "accessToken": token})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	// 不区分“用户不存在”与“密码错误”
	u, err := ac.repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	token, err := ac.appSess.Create(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"user": toUserOut(u), "accessToken": token})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if v, ok := c.Get("sessionToken"); ok {
		if token, _ := v.(string); token != "" {
			_ = ac.appSess.Delete(c.Request.Context(), token)
		}
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	v, _ := c.Get("userID")
	uid, _ := v.(string)
	u, err := ac.repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": toUserOut(u)})
}
