package models

import (
	"time"
)

// Document is a stored compliance document owned by exactly one employee.
// FileName is the original upload name, kept only as download metadata.
// FilePath is the randomized name relative to the upload directory.
// Status holds the manually set value; reads replace it with Vencido once
// the due date has passed.
type Document struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID uint64     `gorm:"not null;index" json:"employeeId"`
	Employee   *Employee  `json:"employee,omitempty"`
	DocType    string     `gorm:"size:255;not null" json:"docType"`
	Category   string     `gorm:"size:100;not null" json:"category"`
	FileName   string     `gorm:"size:255;not null" json:"fileName"`
	FilePath   string     `gorm:"size:512;not null" json:"filePath"`
	UploadDate time.Time  `gorm:"autoCreateTime" json:"uploadDate"`
	DueDate    *time.Time `json:"dueDate"`
	Status     string     `gorm:"size:50;not null;default:OK" json:"status"`
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}
