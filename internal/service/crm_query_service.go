package service

import (
	"context"
	"log"

	"crm_assistant_backend/internal/config"
	"crm_assistant_backend/pkg/database"

	"gorm.io/gorm"
)

// CrmQueryService runs vetted read-only SQL against the target CRM
// database. The connection is opened on first use and reused afterwards.
// Concurrent first calls may each open a connection; the last one wins and
// the others are released by the pool.
type CrmQueryService struct {
	cfg *config.DatabaseConfig
	db  *gorm.DB
}

func NewCrmQueryService(cfg *config.DatabaseConfig) *CrmQueryService {
	return &CrmQueryService{cfg: cfg}
}

// Execute runs one SQL statement and returns its rows. Database errors
// (bad syntax, unknown tables or columns) propagate untouched; only the
// orchestrator converts them into a user-facing response.
func (s *CrmQueryService) Execute(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	if s.db == nil {
		db, err := database.Open(s.cfg)
		if err != nil {
			return nil, err
		}
		log.Println("CRM database connection established")
		s.db = db
	}

	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
