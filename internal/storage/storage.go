// Package storage provides local filesystem storage for assignment submission files
package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// localStorage implements submission file storage on the local filesystem.
// Files are grouped per assignment under the base path.
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// generatePath generates the full file path for a stored submission
func (s *localStorage) generatePath(assignmentID, storedName string) string {
	return filepath.Join(s.basePath, assignmentID, storedName)
}

// Create creates a new file for a submission and returns a WriteCloser
func (s *localStorage) Create(assignmentID, storedName string) (io.WriteCloser, error) {
	path := s.generatePath(assignmentID, storedName)

	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// Open opens a stored submission file for reading
func (s *localStorage) Open(assignmentID, storedName string) (io.ReadCloser, error) {
	path := s.generatePath(assignmentID, storedName)
	return os.Open(path)
}

// Delete removes a stored submission file
func (s *localStorage) Delete(assignmentID, storedName string) error {
	path := s.generatePath(assignmentID, storedName)
	return os.Remove(path)
}

// GenerateStoredName generates a UUID-based name preserving the file extension.
// extension should include the leading dot (e.g. ".pdf").
func GenerateStoredName(extension string) string {
	newUUID := uuid.New().String()
	if extension != "" && extension[0] != '.' {
		return newUUID + "." + extension
	}
	return newUUID + extension
}
