package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/docgestor/docgestor/internal/compliance"
	"github.com/docgestor/docgestor/internal/models"
	"github.com/docgestor/docgestor/internal/storage"
	"gorm.io/gorm"
)

// EmployeeInput carries a create or partial-update request. Nil pointers
// leave the corresponding field untouched on update.
type EmployeeInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	CPF        *string `json:"cpf"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	HireDate   *string `json:"hireDate"`
}

// ListEmployees returns all employees ordered by name, documents newest
// first, with compliance statuses derived as of now.
func ListEmployees(db *gorm.DB, cl compliance.Checklist, now time.Time) ([]models.Employee, error) {
	var employees []models.Employee
	err := db.Preload("Documents", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("upload_date DESC")
	}).Order("name ASC").Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	for i := range employees {
		applyEmployeeStatus(cl, &employees[i], now)
	}
	return employees, nil
}

// GetEmployee returns one employee with documents newest first and derived
// statuses.
func GetEmployee(db *gorm.DB, cl compliance.Checklist, id uint64, now time.Time) (*models.Employee, error) {
	var employee models.Employee
	err := db.Preload("Documents", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("upload_date DESC")
	}).First(&employee, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	applyEmployeeStatus(cl, &employee, now)
	return &employee, nil
}

// CreateEmployee validates the input and inserts a new employee. All fields
// except hireDate are required; hireDate defaults to now.
func CreateEmployee(db *gorm.DB, cl compliance.Checklist, in EmployeeInput, now time.Time) (*models.Employee, error) {
	employee := models.Employee{HireDate: now}
	if err := assignEmployeeFields(&employee, in); err != nil {
		return nil, err
	}
	if employee.Name == "" || employee.Email == "" || employee.CPF == "" ||
		employee.Position == "" || employee.Department == "" {
		return nil, fmt.Errorf("%w: name, email, cpf, position and department are required", ErrValidation)
	}

	if taken, err := emailTaken(db, employee.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateEmail
	}

	if err := db.Create(&employee).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	applyEmployeeStatus(cl, &employee, now)
	return &employee, nil
}

// UpdateEmployee applies a partial update: only supplied fields change.
func UpdateEmployee(db *gorm.DB, cl compliance.Checklist, id uint64, in EmployeeInput, now time.Time) (*models.Employee, error) {
	var employee models.Employee
	if err := db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := assignEmployeeFields(&employee, in); err != nil {
		return nil, err
	}

	if in.Email != nil {
		if taken, err := emailTaken(db, employee.Email, employee.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrDuplicateEmail
		}
	}

	if err := db.Save(&employee).Error; err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return GetEmployee(db, cl, employee.ID, now)
}

// DeleteEmployee removes the employee and all owned document records in one
// transaction, then removes the backing files best-effort. The caller sees
// either a complete deletion of the records or none.
func DeleteEmployee(db *gorm.DB, store *storage.Store, id uint64) error {
	var filePaths []string

	err := db.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.Preload("Documents").First(&employee, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		for _, doc := range employee.Documents {
			filePaths = append(filePaths, doc.FilePath)
		}

		if err := tx.Where("employee_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	// Records are gone; file removal is best-effort from here.
	for _, path := range filePaths {
		if err := store.Remove(path); err != nil {
			log.Printf("Failed to remove file %s for deleted employee %d: %v", path, id, err)
		}
	}
	return nil
}

// assignEmployeeFields copies supplied input fields onto the model,
// validating each one the way the registration form does.
func assignEmployeeFields(employee *models.Employee, in EmployeeInput) error {
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		employee.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if !strings.Contains(email, "@") {
			return fmt.Errorf("%w: invalid email", ErrValidation)
		}
		employee.Email = email
	}
	if in.CPF != nil {
		cpf := strings.TrimSpace(*in.CPF)
		if len(cpf) < 11 {
			return fmt.Errorf("%w: cpf must have at least 11 digits", ErrValidation)
		}
		employee.CPF = cpf
	}
	if in.Position != nil {
		if strings.TrimSpace(*in.Position) == "" {
			return fmt.Errorf("%w: position must not be empty", ErrValidation)
		}
		employee.Position = strings.TrimSpace(*in.Position)
	}
	if in.Department != nil {
		if strings.TrimSpace(*in.Department) == "" {
			return fmt.Errorf("%w: department must not be empty", ErrValidation)
		}
		employee.Department = strings.TrimSpace(*in.Department)
	}
	if in.HireDate != nil {
		hireDate, err := ParseDate(*in.HireDate)
		if err != nil {
			return fmt.Errorf("%w: invalid hireDate", ErrValidation)
		}
		employee.HireDate = hireDate
	}
	return nil
}

// emailTaken reports whether another employee already uses the email.
func emailTaken(db *gorm.DB, email string, selfID uint64) (bool, error) {
	var count int64
	err := db.Model(&models.Employee{}).
		Where("email = ? AND id <> ?", email, selfID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// applyEmployeeStatus fills the derived status fields on the employee and
// its preloaded documents.
func applyEmployeeStatus(cl compliance.Checklist, employee *models.Employee, now time.Time) {
	for i := range employee.Documents {
		ApplyDocumentStatus(&employee.Documents[i], now)
	}
	employee.Status = string(compliance.EvaluateEmployee(cl, documentInfos(employee.Documents), now))
}

// documentInfos projects stored documents into evaluator input.
func documentInfos(docs []models.Document) []compliance.DocumentInfo {
	infos := make([]compliance.DocumentInfo, 0, len(docs))
	for _, d := range docs {
		infos = append(infos, compliance.DocumentInfo{
			DocType:  d.DocType,
			Category: d.Category,
			DueDate:  d.DueDate,
		})
	}
	return infos
}

// ParseDate accepts the date formats the UI sends: bare dates and RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
