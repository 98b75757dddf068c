// Package storage holds contract images and other uploaded artifacts.
// Creation flows write the file before the database transaction opens so a
// storage failure never requires a rollback; when validation fails after a
// file was already written, the caller deletes it again.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind scopes stored files by what they document.
type Kind string

const (
	KindSaleContract   Kind = "sale-contracts"
	KindRentalContract Kind = "rental-contracts"
)

// ContractStore is the collaborator interface handlers depend on. Stateless
// per call; safe for concurrent use.
type ContractStore interface {
	Save(kind Kind, filename string, data []byte) (string, error)
	Delete(path string) error
}

// DiskStore stores files under a root directory, one subdirectory per kind.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save writes the file under a fresh name and returns its path relative to
// the storage root.
func (s *DiskStore) Save(kind Kind, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s directory: %w", kind, err)
	}

	ext := filepath.Ext(filename)
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return filepath.Join(string(kind), name), nil
}

// Delete removes a previously stored file. Paths are relative to the root;
// anything trying to escape it is rejected.
func (s *DiskStore) Delete(path string) error {
	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage path %q", path)
	}
	if err := os.Remove(filepath.Join(s.root, clean)); err != nil {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}
