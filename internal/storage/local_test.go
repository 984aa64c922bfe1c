package storage_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docgestor/docgestor/internal/storage"
)

func TestSaveOpenRemove(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	rel, err := store.Save("Admissão", "Contrato Original.pdf", strings.NewReader("conteudo"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	// Stored under the category slug, with a randomized name keeping the extension
	if filepath.Dir(rel) != "admissao" {
		t.Errorf("Expected admissao directory, got %s", filepath.Dir(rel))
	}
	if filepath.Ext(rel) != ".pdf" {
		t.Errorf("Expected .pdf extension, got %s", filepath.Ext(rel))
	}
	if strings.Contains(rel, "Contrato") {
		t.Errorf("Stored name must not leak the original name, got %s", rel)
	}

	f, err := store.Open(rel)
	if err != nil {
		t.Fatalf("Failed to open stored file: %v", err)
	}
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatalf("Failed to read stored file: %v", err)
	}
	if string(content) != "conteudo" {
		t.Errorf("Expected stored content to round-trip, got %q", content)
	}

	if !store.Exists(rel) {
		t.Error("Expected stored file to exist")
	}

	if err := store.Remove(rel); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	if store.Exists(rel) {
		t.Error("Expected file to be gone after removal")
	}

	// Removing a missing file is not an error
	if err := store.Remove(rel); err != nil {
		t.Errorf("Expected removing a missing file to succeed, got %v", err)
	}
}

func TestDistinctNamesForSameUpload(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	first, err := store.Save("Férias", "aviso.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Failed to save first file: %v", err)
	}
	second, err := store.Save("Férias", "aviso.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Failed to save second file: %v", err)
	}
	if first == second {
		t.Errorf("Expected distinct stored names, got %s twice", first)
	}
}

func TestPathTraversalRejected(t *testing.T) {
	base := t.TempDir()
	store, err := storage.New(base)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	for _, path := range []string{"../escape.txt", "/etc/passwd", "a/../../escape.txt", "."} {
		if _, err := store.Open(path); err == nil {
			t.Errorf("Expected open of %q to fail", path)
		}
		if _, err := store.Abs(path); err == nil {
			t.Errorf("Expected abs of %q to fail", path)
		}
	}

	// The guard must not reject regular nested paths
	if _, err := store.Abs("admissao/file.pdf"); err != nil {
		t.Errorf("Expected nested path to resolve, got %v", err)
	}
	if _, err := os.Stat(base); err != nil {
		t.Fatalf("Base directory missing: %v", err)
	}
}

func TestCategorySlug(t *testing.T) {
	cases := map[string]string{
		"Admissão":     "admissao",
		"Dia a Dia":    "dia-a-dia",
		"Férias":       "ferias",
		"Desligamento": "desligamento",
		"":             "outros",
		"///":          "outros",
	}
	for in, want := range cases {
		if got := storage.CategorySlug(in); got != want {
			t.Errorf("CategorySlug(%q) = %q, want %q", in, got, want)
		}
	}
}
