package repository

import (
	"crm_assistant_backend/internal/model"

	"gorm.io/gorm"
)

type ChatMessageRepository struct {
	DB *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{DB: db}
}

// SaveTurn appends both sides of an exchange in one transaction.
func (r *ChatMessageRepository) SaveTurn(messages ...*model.ChatMessage) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, msg := range messages {
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
