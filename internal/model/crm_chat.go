package model

import (
	"encoding/json"
	"time"
)

// CrmChat is one question/answer turn against the CRM database. The row is
// created as soon as the turn needs persistence and is updated in place as
// the pipeline fills in the SQL, the raw result and the interpretation.
// Short-circuited turns (greetings, farewells) keep those columns NULL.
type CrmChat struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint            `gorm:"index;column:user_id" json:"user_id"`
	Question       string          `gorm:"type:text;not null" json:"question"`
	SQL            string          `gorm:"type:text;column:sql" json:"sql,omitempty"`
	Answer         json.RawMessage `gorm:"type:jsonb;column:answer" json:"answer,omitempty"`
	Interpretation string          `gorm:"type:text" json:"interpretation,omitempty"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (CrmChat) TableName() string {
	return "crm_chats"
}
