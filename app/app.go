package app

import (
	"context"
	"log"
	"time"

	"library_lending_api/config"
	"library_lending_api/db"
	"library_lending_api/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Repo   *db.Repo
	Config config.Config

	appSess *session.Store
}

func (a *App) Sessions() *session.Store { return a.appSess }

// New assembles the app around already-open connections. MustNew is the
// production path; tests hand in their own DB and Redis.
func New(dbConn *gorm.DB, rdb *redis.Client, cfg config.Config) *App {
	r := gin.Default()
	useCORS(r, cfg.FrontendURL)

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Repo: db.NewRepo(dbConn), Config: cfg,
		appSess: session.NewStore(rdb, cfg.SessionTTL),
	}
}

func MustNew() *App {
	cfg := config.Load()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB(cfg)

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	return New(dbConn, rdb, cfg)
}

func (a *App) Close() { _ = a.RDB.Close() }
