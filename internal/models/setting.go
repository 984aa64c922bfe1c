package models

import (
	"time"
)

// Setting is a named configuration blob. The application keeps one row
// ("app") holding company name, theme and the document alert window.
type Setting struct {
	SettingID    uint64 `gorm:"primaryKey;autoIncrement"`
	SettingName  string `gorm:"uniqueIndex;size:255;not null"`
	SettingValue JSON   `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for Setting
func (Setting) TableName() string {
	return "settings"
}
