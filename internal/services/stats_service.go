package services

import (
	"fmt"
	"time"

	"github.com/docgestor/docgestor/internal/compliance"
	"github.com/docgestor/docgestor/internal/models"
	"gorm.io/gorm"
)

// DashboardStats is the summary block shown on the dashboard.
type DashboardStats struct {
	TotalEmployees        int64 `json:"totalEmployees"`
	EmployeesOK           int64 `json:"employeesOK"`
	EmployeesPending      int64 `json:"employeesPending"`
	EmployeesAlert        int64 `json:"employeesAlert"`
	DocumentsExpiringSoon int64 `json:"documentsExpiringSoon"`
}

// GetDashboardStats scans all employees and documents and evaluates each
// one as of now, so statuses reflect due dates that passed since the last
// write. The expiring window comes from the stored alert setting and is
// inclusive on both ends.
func GetDashboardStats(db *gorm.DB, cl compliance.Checklist, now time.Time) (*DashboardStats, error) {
	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}

	var employees []models.Employee
	if err := db.Preload("Documents").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	stats := DashboardStats{TotalEmployees: int64(len(employees))}
	for i := range employees {
		switch compliance.EvaluateEmployee(cl, documentInfos(employees[i].Documents), now) {
		case compliance.StatusAlert:
			stats.EmployeesAlert++
		case compliance.StatusPending:
			stats.EmployeesPending++
		default:
			stats.EmployeesOK++
		}

		for _, doc := range employees[i].Documents {
			if compliance.ExpiringWithin(doc.DueDate, now, settings.DocAlertDays) {
				stats.DocumentsExpiringSoon++
			}
		}
	}
	return &stats, nil
}
