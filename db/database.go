package db

import (
	"database/sql"
	"fmt"

	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/logger"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
func InitDB() error {
	if err := createSongsTable(); err != nil {
		return err
	}
	logger.Info("Database initialization completed.")
	return nil
}

func createSongsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS songs (
		id VARCHAR(64) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		uploader VARCHAR(255),
		artist VARCHAR(255),
		genre VARCHAR(255),
		album VARCHAR(255),
		url VARCHAR(767) NOT NULL,
		duration DOUBLE,
		age_limit INT,
		webpage_url VARCHAR(767),
		was_live BOOLEAN,
		upload_date VARCHAR(16),
		filesize BIGINT,
		added_by VARCHAR(64),
		default_search VARCHAR(767)
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create songs table: %w", err)
	}
	logger.Info("Songs table initialized successfully (or already exists).")
	return nil
}

// CloseDB closes the database connection.
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
