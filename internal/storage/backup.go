package storage

import (
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupInfo describes one backup file
type BackupInfo struct {
	Number  int // 1 is the most recent
	Path    string
	Entries int
}

// BackupPath returns the path of backup n, e.g. entries.jsonl.bak.2
func (s *Store) BackupPath(n int) string {
	return fmt.Sprintf("%s%s.%d", s.path, BackupSuffix, n)
}

// CreateBackup copies the storage file to .bak.1 after shifting older
// backups down. Nothing happens when the storage file does not exist.
func (s *Store) CreateBackup() error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := s.rotateBackups(); err != nil {
		return err
	}
	return copyFile(s.path, s.BackupPath(1))
}

// rotateBackups drops the oldest backup and renames .bak.N to .bak.N+1
func (s *Store) rotateBackups() error {
	if err := os.Remove(s.BackupPath(MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(s.BackupPath(i), s.BackupPath(i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// ListBackups returns the existing backups, most recent first
func (s *Store) ListBackups() ([]BackupInfo, error) {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		path := s.BackupPath(i)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		result, err := NewStore(path).Read()
		if err != nil {
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Path: path, Entries: len(result.Entries)})
	}
	return backups, nil
}

// RestoreBackup replaces the storage file with backup n. The current file
// is backed up first, so a restore can itself be undone.
func (s *Store) RestoreBackup(n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	source := s.BackupPath(n)
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// Rotation shifts the chosen backup, so copy it aside first
	tmp := s.path + ".restore"
	if err := copyFile(source, tmp); err != nil {
		return err
	}
	if err := s.CreateBackup(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
