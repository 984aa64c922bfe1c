package compliance

import (
	"encoding/json"
	"fmt"

	"github.com/docgestor/docgestor/data"
)

// CategoryChecklist lists the required document types for one lifecycle category.
type CategoryChecklist struct {
	Category  string   `json:"category"`
	Documents []string `json:"documents"`
}

// Checklist is the ordered set of category checklists an employee is
// expected to have on file. It drives both the evaluator and the UI.
type Checklist []CategoryChecklist

// Categories returns the category labels in checklist order.
func (cl Checklist) Categories() []string {
	out := make([]string, 0, len(cl))
	for _, c := range cl {
		out = append(out, c.Category)
	}
	return out
}

// Contains reports whether the (docType, category) pair is a required document.
func (cl Checklist) Contains(docType, category string) bool {
	for _, c := range cl {
		if c.Category != category {
			continue
		}
		for _, d := range c.Documents {
			if d == docType {
				return true
			}
		}
	}
	return false
}

// ParseChecklist decodes a checklist from its JSON representation.
func ParseChecklist(raw []byte) (Checklist, error) {
	var cl Checklist
	if err := json.Unmarshal(raw, &cl); err != nil {
		return nil, fmt.Errorf("failed to parse checklist: %w", err)
	}
	if len(cl) == 0 {
		return nil, fmt.Errorf("checklist is empty")
	}
	for _, c := range cl {
		if c.Category == "" {
			return nil, fmt.Errorf("checklist category without a name")
		}
		if len(c.Documents) == 0 {
			return nil, fmt.Errorf("checklist category %q has no documents", c.Category)
		}
	}
	return cl, nil
}

// DefaultChecklist returns the checklist embedded with the binary.
func DefaultChecklist() (Checklist, error) {
	return ParseChecklist(data.ChecklistJSON)
}
