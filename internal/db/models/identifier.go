package models

import (
	"time"
)

// Identifier represents one issued ID in the ids table. Rows are soft-deleted
// via the deleted flag and never removed.
type Identifier struct {
	ID        string    `gorm:"primaryKey;column:id"                       json:"id"`
	Owner     string    `gorm:"column:owner;not null"                      json:"owner"`
	Table     *string   `gorm:"column:table_name"                          json:"table,omitempty"`
	UserID    *string   `gorm:"column:user_id"                             json:"user_id,omitempty"`
	Confirmed bool      `gorm:"column:confirmed;default:0"                 json:"confirmed"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	Deleted   bool      `gorm:"column:deleted;default:0"                   json:"-"`
}

// TableName maps the model onto the ids table.
func (Identifier) TableName() string {
	return "ids"
}
