package db

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MrRexos/wisdom-booking-api/internal/config"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	// Pool nativo do pgx por baixo do GORM.
	conn, err := sql.Open("pgx", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.BookingEvent{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
