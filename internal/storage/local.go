package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded documents on local disk, one subdirectory per
// category. Stored names are randomized; the original file name survives
// only as database metadata.
type Store struct {
	baseDir string
}

// New creates the base directory if needed and returns a Store rooted there.
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// BaseDir returns the root of the upload tree.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Save writes the reader's content under the category subdirectory and
// returns the path relative to the base directory. The stored name is a
// fresh UUID carrying the original extension.
func (s *Store) Save(category, originalName string, r io.Reader) (string, error) {
	dir := CategorySlug(category)
	if err := os.MkdirAll(filepath.Join(s.baseDir, dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	rel := filepath.Join(dir, name)

	f, err := os.Create(filepath.Join(s.baseDir, rel))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return rel, nil
}

// Open opens a stored file for reading. os.ErrNotExist surfaces unchanged
// so callers can report a recoverable not-found.
func (s *Store) Open(relPath string) (io.ReadCloser, error) {
	abs, err := s.abs(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

// Exists reports whether the stored file is present on disk.
func (s *Store) Exists(relPath string) bool {
	abs, err := s.abs(relPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(relPath string) error {
	abs, err := s.abs(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Abs resolves a stored relative path to an absolute one, rejecting
// anything that escapes the base directory.
func (s *Store) Abs(relPath string) (string, error) {
	return s.abs(relPath)
}

func (s *Store) abs(relPath string) (string, error) {
	clean := filepath.Clean(relPath)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid file path %q", relPath)
	}
	return filepath.Join(s.baseDir, clean), nil
}

// slugReplacer folds the accented characters appearing in category labels.
var slugReplacer = strings.NewReplacer(
	"ã", "a", "á", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"õ", "o", "ó", "o", "ô", "o",
	"ú", "u",
	"ç", "c",
)

// CategorySlug maps a category label to its directory name:
// "Admissão" -> "admissao", "Dia a Dia" -> "dia-a-dia". Labels outside the
// fixed taxonomy land in "outros".
func CategorySlug(category string) string {
	slug := slugReplacer.Replace(strings.ToLower(strings.TrimSpace(category)))
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "outros"
	}
	return out
}
