// Package models contains database model definitions.
package models

// Setting represents a configuration setting stored in the registry database.
type Setting struct {
	Key   string `gorm:"primaryKey;column:key" json:"key"`
	Value string `gorm:"column:value"          json:"value"`
}

// TableName maps the model onto the settings table.
func (Setting) TableName() string {
	return "settings"
}
