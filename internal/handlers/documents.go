package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/docgestor/docgestor/internal/compliance"
	"github.com/docgestor/docgestor/internal/models"
	"github.com/docgestor/docgestor/internal/services"
	"github.com/docgestor/docgestor/internal/storage"
	"github.com/docgestor/docgestor/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// allowedExtensions mirrors the upload policy: images, PDFs and Word files.
var allowedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {},
	".pdf": {}, ".doc": {}, ".docx": {},
}

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"application/pdf": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// DocumentHandler handles document routes
type DocumentHandler struct {
	DB            *gorm.DB
	Store         *storage.Store
	Checklist     compliance.Checklist
	MaxUploadSize int64
}

// ListByEmployee handles GET /api/documents/employee/:employeeId
// @Summary List an employee's documents
// @Description Documents of one employee, newest upload first
// @Tags Documents
// @Produce json
// @Param employeeId path int true "Employee ID"
// @Success 200 {array} models.Document
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /documents/employee/{employeeId} [get]
func (h *DocumentHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID, err := parseID(c, "employeeId")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid employee id", "documents.list")
	}

	docs, err := services.ListEmployeeDocuments(h.DB, employeeID, time.Now())
	if err != nil {
		log.Printf("documents.list: %v", err)
		return utils.InternalErrorResponse(c, "documents.list")
	}
	return c.Status(fiber.StatusOK).JSON(docs)
}

// Upload handles POST /api/documents/upload
// @Summary Upload a document
// @Description Multipart upload with fields employeeId, docType, category, optional dueDate and a "document" file part. The file is persisted before the record is written.
// @Tags Documents
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.Document
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 413 {object} utils.ErrorResponseStruct
// @Failure 415 {object} utils.ErrorResponseStruct
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return utils.ValidationErrorResponse(c, "No file sent", "documents.upload")
	}

	if file.Size > h.MaxUploadSize {
		return utils.ErrorResponse(c,
			fmt.Sprintf("File exceeds the %d byte limit", h.MaxUploadSize),
			fiber.StatusRequestEntityTooLarge, "documents.upload")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return utils.ErrorResponse(c, "File type not allowed",
			fiber.StatusUnsupportedMediaType, "documents.upload")
	}
	if mime := file.Header.Get(fiber.HeaderContentType); mime != "" && mime != "application/octet-stream" {
		if _, ok := allowedMIMETypes[mime]; !ok {
			return utils.ErrorResponse(c, "File type not allowed",
				fiber.StatusUnsupportedMediaType, "documents.upload")
		}
	}

	employeeID, err := strconv.ParseUint(c.FormValue("employeeId"), 10, 64)
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid employeeId", "documents.upload")
	}

	doc := models.Document{
		EmployeeID: employeeID,
		DocType:    c.FormValue("docType"),
		Category:   c.FormValue("category"),
		FileName:   file.Filename,
	}
	if dueDate := c.FormValue("dueDate"); dueDate != "" {
		parsed, err := services.ParseDate(dueDate)
		if err != nil {
			return utils.ValidationErrorResponse(c, "Invalid dueDate", "documents.upload")
		}
		doc.DueDate = &parsed
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("documents.upload: %v", err)
		return utils.InternalErrorResponse(c, "documents.upload")
	}
	defer src.Close()

	// File first, record second.
	relPath, err := h.Store.Save(doc.Category, file.Filename, src)
	if err != nil {
		log.Printf("documents.upload: %v", err)
		return utils.InternalErrorResponse(c, "documents.upload")
	}
	doc.FilePath = relPath

	if err := services.CreateDocument(h.DB, &doc); err != nil {
		if removeErr := h.Store.Remove(relPath); removeErr != nil {
			log.Printf("documents.upload: failed to remove orphaned file %s: %v", relPath, removeErr)
		}
		return serviceErrorResponse(c, err, "Employee not found", "documents.upload")
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// Get handles GET /api/documents/:id
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid document id", "documents.get")
	}

	doc, err := services.GetDocument(h.DB, id, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "Document not found", "documents.get")
	}
	return c.Status(fiber.StatusOK).JSON(doc)
}

// Download handles GET /api/documents/:id/download
// @Summary Download a document
// @Description Streams the stored file under its original name. A record whose file is gone from disk is a recoverable 404.
// @Tags Documents
// @Produce octet-stream
// @Param id path int true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid document id", "documents.download")
	}

	doc, err := services.GetDocument(h.DB, id, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "Document not found", "documents.download")
	}

	if !h.Store.Exists(doc.FilePath) {
		return utils.NotFoundResponse(c, "File not found on server")
	}
	abs, err := h.Store.Abs(doc.FilePath)
	if err != nil {
		log.Printf("documents.download: %v", err)
		return utils.InternalErrorResponse(c, "documents.download")
	}
	return c.Download(abs, doc.FileName)
}

// Delete handles DELETE /api/documents/:id
// @Summary Delete a document
// @Description Removes the record, then the backing file best-effort
// @Tags Documents
// @Param id path int true "Document ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid document id", "documents.delete")
	}

	if err := services.DeleteDocument(h.DB, h.Store, id); err != nil {
		return serviceErrorResponse(c, err, "Document not found", "documents.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus handles PATCH /api/documents/:id/status
// @Summary Set a document's status
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param body body object{status=string} true "New status (OK, Pendente or Vencido)"
// @Success 200 {object} models.Document
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid document id", "documents.status")
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body", "documents.status")
	}

	doc, err := services.UpdateDocumentStatus(h.DB, id, in.Status, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "Document not found", "documents.status")
	}
	return c.Status(fiber.StatusOK).JSON(doc)
}

// StatsByStatus handles GET /api/documents/stats/by-status
// @Summary Document counts grouped by status
// @Tags Documents
// @Produce json
// @Success 200 {array} services.StatusCount
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /documents/stats/by-status [get]
func (h *DocumentHandler) StatsByStatus(c *fiber.Ctx) error {
	counts, err := services.CountDocumentsByStatus(h.DB, time.Now())
	if err != nil {
		log.Printf("documents.stats: %v", err)
		return utils.InternalErrorResponse(c, "documents.stats")
	}
	return c.Status(fiber.StatusOK).JSON(counts)
}

// Checklist handles GET /api/documents/checklist
// @Summary Required-document checklist
// @Description The category checklist driving compliance evaluation, shared with the UI
// @Tags Documents
// @Produce json
// @Success 200 {array} compliance.CategoryChecklist
// @Router /documents/checklist [get]
func (h *DocumentHandler) GetChecklist(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.Checklist)
}
