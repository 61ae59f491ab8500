package storage

import (
	"os"
	"strings"
	"testing"
)

func TestBackupPath(t *testing.T) {
	s := NewStore("/data/entries.jsonl")
	if got := s.BackupPath(2); got != "/data/entries.jsonl.bak.2" {
		t.Errorf("BackupPath(2) = %q", got)
	}
}

func TestCreateBackup_NoExistingFile(t *testing.T) {
	s := newTestStore(t, "")
	if err := s.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() returned error: %v", err)
	}
	if fileExists(s.BackupPath(1)) {
		t.Error("no backup should be created for a missing file")
	}
}

func TestCreateBackup_Rotation(t *testing.T) {
	s := newTestStore(t, "")

	for i := 1; i <= MaxBackupCount+1; i++ {
		if err := os.WriteFile(s.Path(), []byte(strings.Repeat("x", i)), 0644); err != nil {
			t.Fatal(err)
		}
		if err := s.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup() #%d returned error: %v", i, err)
		}
	}

	for n := 1; n <= MaxBackupCount; n++ {
		data, err := os.ReadFile(s.BackupPath(n))
		if err != nil {
			t.Fatalf("backup %d missing: %v", n, err)
		}
		if want := MaxBackupCount + 2 - n; len(data) != want {
			t.Errorf("backup %d has %d bytes, expected %d", n, len(data), want)
		}
	}
	if fileExists(s.BackupPath(MaxBackupCount + 1)) {
		t.Error("more than MaxBackupCount backups kept")
	}
}

func TestListAndRestoreBackup(t *testing.T) {
	s := newTestStore(t, "")
	appendAll(t, s, finished("a", clock(9, 0), clock(10, 0)))
	if err := s.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	appendAll(t, s, finished("b", clock(10, 0), clock(11, 0)))

	backups, err := s.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() returned error: %v", err)
	}
	if len(backups) != 1 || backups[0].Number != 1 || backups[0].Entries != 1 {
		t.Fatalf("ListBackups() = %+v", backups)
	}

	if err := s.RestoreBackup(1); err != nil {
		t.Fatalf("RestoreBackup(1) returned error: %v", err)
	}

	active, _ := s.ReadActive()
	if len(active) != 1 || active[0].ID != "a" {
		t.Errorf("after restore entries = %+v, expected only a", active)
	}

	// the state before the restore became backup 1
	backups, _ = s.ListBackups()
	if len(backups) != 2 || backups[0].Entries != 2 {
		t.Errorf("after restore backups = %+v", backups)
	}
}

func TestRestoreBackup_Invalid(t *testing.T) {
	s := newTestStore(t, "")
	tests := []struct {
		n       int
		wantMsg string
	}{
		{0, "invalid backup number"},
		{MaxBackupCount + 1, "invalid backup number"},
		{2, "does not exist"},
	}
	for _, tt := range tests {
		err := s.RestoreBackup(tt.n)
		if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
			t.Errorf("RestoreBackup(%d) error = %v, expected %q", tt.n, err, tt.wantMsg)
		}
	}
}
