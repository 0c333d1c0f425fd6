package model

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is the append-only log written by the plain chat proxy and
// question-answer endpoints. One row per side of a turn.
type ChatMessage struct {
	ID             uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Role           MessageRole `gorm:"size:20;not null" json:"role"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	ChatModel      string      `gorm:"size:100" json:"chat_model,omitempty"`
	EmbeddingModel string      `gorm:"size:100" json:"embedding_model,omitempty"`
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
