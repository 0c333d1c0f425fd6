package database

import (
	"crm_assistant_backend/internal/config"
	"crm_assistant_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func DSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		sslMode,
	)
}

// Open connects to a Postgres database without running migrations. Used for
// the CRM database, which this service never writes to.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// InitDB connects to the service's own database and, when migrate is set,
// creates the chat and embedding tables. The vector extension must exist
// before document_chunks can be created.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("failed to create vector extension: %w", err)
	}

	err = db.AutoMigrate(
		&model.CrmChat{},
		&model.ChatMessage{},
		&model.DocumentChunk{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
