package db

import (
	"fmt"
	"log"

	"library_lending_api/config"
	"library_lending_api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	// Referential checks live in the repo layer; the ledger keeps history
	// even after a book or user is removed from the catalog.
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.User{}, &models.Author{}, &models.Book{}, &models.BorrowRecord{}); err != nil {
		return err
	}

	// 同一本书最多一条“未归还”记录：并发 borrow 由这里兜底
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_book
	  ON %s (book_id)
	  WHERE returned_at IS NULL;
	`, models.BorrowTable, models.BorrowTable)).Error; err != nil {
		return err
	}

	// 查询当前在借更快
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_user_borrowedat_desc
	  ON %s (user_id, borrowed_at DESC)
	  WHERE returned_at IS NULL;
	`, models.BorrowTable, models.BorrowTable)).Error; err != nil {
		return err
	}

	return nil
}
