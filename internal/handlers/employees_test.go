package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docgestor/docgestor/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func seedEmployee(t *testing.T, db *gorm.DB, name, email string) uint64 {
	t.Helper()
	emp := models.Employee{
		Name:       name,
		Email:      email,
		CPF:        "12345678901",
		Position:   "Analista",
		Department: "RH",
		HireDate:   time.Now(),
	}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("Failed to seed employee: %v", err)
	}
	return emp.ID
}

func fetchDashboard(t *testing.T, app *fiber.App) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/employees/stats/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 from dashboard, got %d", resp.StatusCode)
	}
	var stats map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode dashboard response: %v", err)
	}
	return stats
}

func TestCreateAndListEmployees(t *testing.T) {
	app, _, _ := newTestApp(t)

	body := `{"name":"João Silva","email":"joao.silva@empresa.com","cpf":"12345678901","position":"Desenvolvedor","department":"TI"}`
	req := httptest.NewRequest("POST", "/api/employees", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var created models.Employee
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected a generated id")
	}
	// No documents on file yet, so the full checklist is pending
	if created.Status != "Pendente" {
		t.Errorf("Expected Pendente status for a new employee, got %s", created.Status)
	}

	req = httptest.NewRequest("GET", "/api/employees", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var employees []models.Employee
	if err := json.NewDecoder(resp.Body).Decode(&employees); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("Expected 1 employee, got %d", len(employees))
	}
	if employees[0].Email != "joao.silva@empresa.com" {
		t.Errorf("Unexpected employee email %s", employees[0].Email)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	app, db, _ := newTestApp(t)

	// Missing required fields
	req := httptest.NewRequest("POST", "/api/employees", strings.NewReader(`{"name":"Só Nome"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	// Duplicate email
	seedEmployee(t, db, "Maria Santos", "maria.santos@empresa.com")
	body := `{"name":"Outra Maria","email":"maria.santos@empresa.com","cpf":"98765432109","position":"Analista","department":"RH"}`
	req = httptest.NewRequest("POST", "/api/employees", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for duplicate email, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Employee{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 employee after rejected creates, got %d", count)
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/employees/9999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestUpdateEmployeePartial(t *testing.T) {
	app, db, _ := newTestApp(t)
	id := seedEmployee(t, db, "Pedro Oliveira", "pedro.oliveira@empresa.com")

	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/employees/%d", id),
		strings.NewReader(`{"position":"Diretor de Vendas"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var updated models.Employee
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.Position != "Diretor de Vendas" {
		t.Errorf("Expected updated position, got %s", updated.Position)
	}
	// Untouched fields keep their values
	if updated.Name != "Pedro Oliveira" || updated.Email != "pedro.oliveira@empresa.com" {
		t.Errorf("Partial update changed untouched fields: %s / %s", updated.Name, updated.Email)
	}
}

func TestDeleteEmployeeCascades(t *testing.T) {
	app, db, store := newTestApp(t)
	id := seedEmployee(t, db, "João Silva", "joao.silva@empresa.com")

	// Two documents with backing files
	for i := 0; i < 2; i++ {
		rel, err := store.Save("Admissão", fmt.Sprintf("doc%d.pdf", i), strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}
		doc := models.Document{
			EmployeeID: id,
			DocType:    "Contrato de Trabalho",
			Category:   "Admissão",
			FileName:   fmt.Sprintf("doc%d.pdf", i),
			FilePath:   rel,
		}
		if err := db.Create(&doc).Error; err != nil {
			t.Fatalf("Failed to create document: %v", err)
		}
	}

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/employees/%d", id), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Fatalf("Expected status 204, got %d", resp.StatusCode)
	}

	// Document records are gone
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/documents/employee/%d", id), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var docs []models.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected no documents after cascade delete, got %d", len(docs))
	}

	var count int64
	db.Model(&models.Document{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 document rows, got %d", count)
	}
}

func TestDashboardCountsFollowCrud(t *testing.T) {
	app, db, _ := newTestApp(t)

	idA := seedEmployee(t, db, "A", "a@empresa.com")
	seedEmployee(t, db, "B", "b@empresa.com")

	stats := fetchDashboard(t, app)
	if stats["totalEmployees"] != float64(2) {
		t.Errorf("Expected 2 employees, got %v", stats["totalEmployees"])
	}

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/employees/%d", idA), nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	stats = fetchDashboard(t, app)
	if stats["totalEmployees"] != float64(1) {
		t.Errorf("Expected 1 employee after delete, got %v", stats["totalEmployees"])
	}
}

func TestDashboardExpiringWindowBoundary(t *testing.T) {
	app, db, _ := newTestApp(t)
	id := seedEmployee(t, db, "João Silva", "joao.silva@empresa.com")

	today := time.Now()
	insideEdge := today.AddDate(0, 0, 30)
	outside := today.AddDate(0, 0, 32)

	for i, due := range []time.Time{today, insideEdge, outside} {
		due := due
		doc := models.Document{
			EmployeeID: id,
			DocType:    "Atestados Médicos",
			Category:   "Dia a Dia",
			FileName:   fmt.Sprintf("doc%d.pdf", i),
			FilePath:   fmt.Sprintf("dia-a-dia/doc%d.pdf", i),
			DueDate:    &due,
		}
		if err := db.Create(&doc).Error; err != nil {
			t.Fatalf("Failed to create document: %v", err)
		}
	}

	stats := fetchDashboard(t, app)
	// Due today and due at now+30d count; past the window does not
	if stats["documentsExpiringSoon"] != float64(2) {
		t.Errorf("Expected 2 documents expiring soon, got %v", stats["documentsExpiringSoon"])
	}
}
