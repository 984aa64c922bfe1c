package compliance

import (
	"time"
)

// Status is a compliance label. Documents use OK/Pendente/Vencido,
// employees use OK/Pendente/Alerta.
type Status string

const (
	StatusOK      Status = "OK"
	StatusPending Status = "Pendente"
	StatusExpired Status = "Vencido"
	StatusAlert   Status = "Alerta"
)

// ValidDocumentStatus reports whether s is a settable document status.
func ValidDocumentStatus(s string) bool {
	switch Status(s) {
	case StatusOK, StatusPending, StatusExpired:
		return true
	}
	return false
}

// DocumentInfo is the slice of a stored document the evaluator needs.
type DocumentInfo struct {
	DocType  string
	Category string
	DueDate  *time.Time
}

// RequirementStatus is the evaluated state of one required checklist item.
type RequirementStatus struct {
	DocType  string `json:"docType"`
	Category string `json:"category"`
	Status   Status `json:"status"`
}

// day truncates t to its calendar day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DocumentStatus derives the display status of an uploaded document from
// its due date. A document with no due date, or a due date today or later,
// is OK; a past due date makes it Vencido. Comparison is at day granularity.
func DocumentStatus(dueDate *time.Time, now time.Time) Status {
	if dueDate == nil {
		return StatusOK
	}
	if day(*dueDate).Before(day(now)) {
		return StatusExpired
	}
	return StatusOK
}

// ExpiringWithin reports whether dueDate falls inside [now, now+days],
// both ends inclusive, at day granularity. A nil due date never expires.
func ExpiringWithin(dueDate *time.Time, now time.Time, days int) bool {
	if dueDate == nil {
		return false
	}
	due := day(*dueDate)
	today := day(now)
	if due.Before(today) {
		return false
	}
	return !due.After(today.AddDate(0, 0, days))
}

// EvaluateRequirements matches the employee's uploaded documents against the
// checklist by exact (docType, category) pair. A required item with no match
// is Pendente; a match with a past due date is Vencido; otherwise OK. When
// the same pair was uploaded more than once, the best status wins (a valid
// re-upload supersedes an expired one).
func EvaluateRequirements(cl Checklist, docs []DocumentInfo, now time.Time) []RequirementStatus {
	var out []RequirementStatus
	for _, cat := range cl {
		for _, docType := range cat.Documents {
			status := StatusPending
			for _, d := range docs {
				if d.DocType != docType || d.Category != cat.Category {
					continue
				}
				if s := DocumentStatus(d.DueDate, now); s == StatusOK {
					status = StatusOK
					break
				}
				status = StatusExpired
			}
			out = append(out, RequirementStatus{
				DocType:  docType,
				Category: cat.Category,
				Status:   status,
			})
		}
	}
	return out
}

// EmployeeStatus rolls required-document statuses up into one label.
// Alerta dominates Pendente dominates OK.
func EmployeeStatus(items []RequirementStatus) Status {
	status := StatusOK
	for _, item := range items {
		switch item.Status {
		case StatusExpired:
			return StatusAlert
		case StatusPending:
			status = StatusPending
		}
	}
	return status
}

// EvaluateEmployee derives an employee's aggregate compliance status from
// their uploaded documents. Pure function of (checklist, documents, now).
func EvaluateEmployee(cl Checklist, docs []DocumentInfo, now time.Time) Status {
	return EmployeeStatus(EvaluateRequirements(cl, docs, now))
}
