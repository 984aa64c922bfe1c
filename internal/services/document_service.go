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

// StatusCount is one row of the by-status report.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ListEmployeeDocuments returns the employee's documents, newest upload
// first, with derived statuses. An unknown employee id yields an empty list.
func ListEmployeeDocuments(db *gorm.DB, employeeID uint64, now time.Time) ([]models.Document, error) {
	var docs []models.Document
	err := db.Where("employee_id = ?", employeeID).
		Order("upload_date DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	for i := range docs {
		ApplyDocumentStatus(&docs[i], now)
	}
	return docs, nil
}

// GetDocument returns one document with its owning employee preloaded.
func GetDocument(db *gorm.DB, id uint64, now time.Time) (*models.Document, error) {
	var doc models.Document
	if err := db.Preload("Employee").First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	ApplyDocumentStatus(&doc, now)
	return &doc, nil
}

// CreateDocument inserts the record for an already-persisted file. The
// owning employee must exist.
func CreateDocument(db *gorm.DB, doc *models.Document) error {
	if strings.TrimSpace(doc.DocType) == "" || strings.TrimSpace(doc.Category) == "" {
		return fmt.Errorf("%w: docType and category are required", ErrValidation)
	}

	var count int64
	if err := db.Model(&models.Employee{}).Where("id = ?", doc.EmployeeID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check employee: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if doc.Status == "" {
		doc.Status = string(compliance.StatusOK)
	}
	if err := db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// DeleteDocument removes the record first, then the backing file
// best-effort. A file already missing from disk does not block deletion
// and is not an error.
func DeleteDocument(db *gorm.DB, store *storage.Store, id uint64) error {
	var doc models.Document
	if err := db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	if err := db.Delete(&doc).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := store.Remove(doc.FilePath); err != nil {
		log.Printf("Failed to remove file %s for deleted document %d: %v", doc.FilePath, id, err)
	}
	return nil
}

// UpdateDocumentStatus sets the stored status independently of re-upload.
func UpdateDocumentStatus(db *gorm.DB, id uint64, status string, now time.Time) (*models.Document, error) {
	if !compliance.ValidDocumentStatus(status) {
		return nil, fmt.Errorf("%w: status must be OK, Pendente or Vencido", ErrValidation)
	}

	var doc models.Document
	if err := db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if err := db.Model(&doc).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update document status: %w", err)
	}

	ApplyDocumentStatus(&doc, now)
	return &doc, nil
}

// CountDocumentsByStatus scans all documents and groups them by derived
// status. Grouping happens after derivation so an expired due date counts
// as Vencido no matter what was stored.
func CountDocumentsByStatus(db *gorm.DB, now time.Time) ([]StatusCount, error) {
	var docs []models.Document
	if err := db.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}

	counts := map[string]int64{}
	for i := range docs {
		ApplyDocumentStatus(&docs[i], now)
		counts[docs[i].Status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for _, status := range []compliance.Status{compliance.StatusOK, compliance.StatusPending, compliance.StatusExpired} {
		if n, ok := counts[string(status)]; ok {
			out = append(out, StatusCount{Status: string(status), Count: n})
		}
	}
	return out, nil
}

// ApplyDocumentStatus overwrites the stored status with Vencido once the
// due date has passed. Otherwise the stored (possibly manually set) value
// stands.
func ApplyDocumentStatus(doc *models.Document, now time.Time) {
	if compliance.DocumentStatus(doc.DueDate, now) == compliance.StatusExpired {
		doc.Status = string(compliance.StatusExpired)
	}
}
