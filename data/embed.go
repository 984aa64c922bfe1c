package data

import (
	_ "embed"
)

//go:embed checklist.json
var ChecklistJSON []byte
