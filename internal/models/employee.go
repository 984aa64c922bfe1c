package models

import (
	"time"
)

// Employee is a tracked employee. Status is not persisted: it is derived
// from the required-document checklist on every read.
type Employee struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Email      string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	CPF        string     `gorm:"size:14;not null" json:"cpf"`
	Position   string     `gorm:"size:255;not null" json:"position"`
	Department string     `gorm:"size:255;not null" json:"department"`
	HireDate   time.Time  `json:"hireDate"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Status     string     `gorm:"-" json:"status"`
	Documents  []Document `gorm:"constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

// TableName overrides the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
