// app/bootstrap.go
package app

import (
	"context"
	"errors"
	"log"

	"library_lending_api/config"
	"library_lending_api/db"
	"library_lending_api/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstLibrarian seeds an initial account from BOOTSTRAP_EMAIL /
// BOOTSTRAP_PASSWORD so a fresh deployment has a login without touching
// the database by hand. Does nothing if the account already exists.
func BootstrapFirstLibrarian(ctx context.Context, cfg config.Config, repo *db.Repo) {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return
	}
	if _, err := repo.FindUserByEmail(ctx, cfg.BootstrapEmail); err == nil {
		return
	} else if !errors.Is(err, db.ErrUserNotFound) {
		log.Printf("bootstrap lookup failed: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap hash failed: %v", err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        cfg.BootstrapEmail,
		Name:         cfg.BootstrapName,
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap user failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created first librarian account for %s", cfg.BootstrapEmail)
}
