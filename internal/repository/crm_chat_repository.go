package repository

import (
	"crm_assistant_backend/internal/model"

	"gorm.io/gorm"
)

type CrmChatRepository struct {
	DB *gorm.DB
}

func NewCrmChatRepository(db *gorm.DB) *CrmChatRepository {
	return &CrmChatRepository{DB: db}
}

func (r *CrmChatRepository) Create(chat *model.CrmChat) error {
	return r.DB.Create(chat).Error
}

// Update persists whatever fields the pipeline has filled in so far.
func (r *CrmChatRepository) Update(chat *model.CrmChat) error {
	return r.DB.Save(chat).Error
}

// RecentByUser returns the user's last n turns, most recent first. Callers
// that render prompt history reverse the slice to chronological order.
func (r *CrmChatRepository) RecentByUser(userID uint, n int) ([]model.CrmChat, error) {
	var chats []model.CrmChat
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(n).
		Find(&chats).Error
	return chats, err
}

func (r *CrmChatRepository) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.CrmChat{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
