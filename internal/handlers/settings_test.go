package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docgestor/docgestor/internal/models"
)

func TestSettingsDefaults(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/settings", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var settings map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if settings["theme"] != "light" {
		t.Errorf("Expected default theme light, got %v", settings["theme"])
	}
	if settings["docAlertDays"] != float64(30) {
		t.Errorf("Expected default docAlertDays 30, got %v", settings["docAlertDays"])
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest("PUT", "/api/settings",
		strings.NewReader(`{"companyName":"Empresa Exemplo"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var settings map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if settings["companyName"] != "Empresa Exemplo" {
		t.Errorf("Expected updated company name, got %v", settings["companyName"])
	}
	// Untouched fields keep their defaults
	if settings["docAlertDays"] != float64(30) {
		t.Errorf("Expected docAlertDays untouched at 30, got %v", settings["docAlertDays"])
	}

	// The merge survives a second update
	req = httptest.NewRequest("PUT", "/api/settings", strings.NewReader(`{"docAlertDays":7}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if settings["companyName"] != "Empresa Exemplo" {
		t.Errorf("Expected company name kept after second update, got %v", settings["companyName"])
	}
	if settings["docAlertDays"] != float64(7) {
		t.Errorf("Expected docAlertDays 7, got %v", settings["docAlertDays"])
	}
}

func TestDashboardHonorsAlertWindowSetting(t *testing.T) {
	app, db, _ := newTestApp(t)
	id := seedEmployee(t, db, "João Silva", "joao.silva@empresa.com")

	// Due in 20 days: inside the default 30-day window
	due := time.Now().AddDate(0, 0, 20)
	doc := models.Document{
		EmployeeID: id, DocType: "Atestados Médicos", Category: "Dia a Dia",
		FileName: "atestado.pdf", FilePath: "dia-a-dia/atestado.pdf", DueDate: &due,
	}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	stats := fetchDashboard(t, app)
	if stats["documentsExpiringSoon"] != float64(1) {
		t.Fatalf("Expected 1 document expiring within 30 days, got %v", stats["documentsExpiringSoon"])
	}

	// Narrow the window below the due date
	req := httptest.NewRequest("PUT", "/api/settings", strings.NewReader(`{"docAlertDays":10}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	stats = fetchDashboard(t, app)
	if stats["documentsExpiringSoon"] != float64(0) {
		t.Errorf("Expected 0 documents expiring within 10 days, got %v", stats["documentsExpiringSoon"])
	}
}

func TestSettingsAcceptStringAlertDays(t *testing.T) {
	app, _, _ := newTestApp(t)

	// Clients sending the number as a string still parse
	req := httptest.NewRequest("PUT", "/api/settings", strings.NewReader(`{"docAlertDays":"15"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var settings map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if fmt.Sprintf("%v", settings["docAlertDays"]) != "15" {
		t.Errorf("Expected docAlertDays 15, got %v", settings["docAlertDays"])
	}
}
