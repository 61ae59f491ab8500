package service

import (
	"fmt"

	"github.com/xolan/billable/internal/storage"
)

// StorageService exposes health checks and backups of the entries file
type StorageService struct {
	store *storage.Store
}

// Path returns the entries file location
func (s *StorageService) Path() string {
	return s.store.Path()
}

// Validate reports the health of the entries file
func (s *StorageService) Validate() (storage.StorageHealth, error) {
	return s.store.Validate()
}

// Backups lists the available backups, most recent first
func (s *StorageService) Backups() ([]storage.BackupInfo, error) {
	return s.store.ListBackups()
}

// RestoreBackup replaces the entries file with backup n
func (s *StorageService) RestoreBackup(n int) error {
	if err := s.store.RestoreBackup(n); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}
