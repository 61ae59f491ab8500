// Package ledger persists day confirmations and exported billable records in
// a local sqlite database.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/logging"
)

// DayLayout is the format of day keys
const DayLayout = "2006-01-02"

// ConfirmedDay locks a day against further changes
type ConfirmedDay struct {
	Day         string    `gorm:"primaryKey;type:text"`
	ConfirmedAt time.Time `gorm:"not null"`
}

// ExportRecord is one billable record written by an export run
type ExportRecord struct {
	ID          string    `gorm:"primaryKey;type:text"`
	RunID       string    `gorm:"type:text;not null;index"`
	Day         string    `gorm:"type:text;not null;index"`
	EntryID     string    `gorm:"type:text;not null"`
	CaseID      string    `gorm:"type:text"`
	PhaseID     string    `gorm:"type:text"`
	WorktypeID  string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	Start       time.Time `gorm:"not null"`
	End         time.Time `gorm:"not null"`
	Source      string    `gorm:"type:text;not null"`
	ExportedAt  time.Time `gorm:"not null"`
}

// Minutes returns the billed minutes of the record
func (r ExportRecord) Minutes() int {
	return int(r.End.Sub(r.Start) / time.Minute)
}

// Ledger wraps the database
type Ledger struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// Open opens (creating if needed) the ledger at dsn and migrates its schema.
// dsn is a file path or any sqlite connection string.
func Open(dsn string, log *zap.Logger) (*Ledger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logging.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if err := db.AutoMigrate(&ConfirmedDay{}, &ExportRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger: %w", err)
	}
	return &Ledger{db: db, log: log, now: time.Now}, nil
}

// Close releases the underlying connection
func (l *Ledger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DayKey formats t as a day key in its own location
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// Confirm locks day. Confirming a confirmed day is a no-op.
func (l *Ledger) Confirm(ctx context.Context, day string) error {
	if err := checkDay(day); err != nil {
		return err
	}
	confirmed, err := l.IsConfirmed(ctx, day)
	if err != nil || confirmed {
		return err
	}
	row := ConfirmedDay{Day: day, ConfirmedAt: l.now().UTC()}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to confirm %s: %w", day, err)
	}
	l.log.Info("day confirmed", zap.String("day", day))
	return nil
}

// Unconfirm unlocks day. It reports whether the day was confirmed.
func (l *Ledger) Unconfirm(ctx context.Context, day string) (bool, error) {
	if err := checkDay(day); err != nil {
		return false, err
	}
	res := l.db.WithContext(ctx).Where("day = ?", day).Delete(&ConfirmedDay{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to unconfirm %s: %w", day, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IsConfirmed reports whether day is locked
func (l *Ledger) IsConfirmed(ctx context.Context, day string) (bool, error) {
	var row ConfirmedDay
	err := l.db.WithContext(ctx).Where("day = ?", day).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to look up %s: %w", day, err)
	}
	return true, nil
}

// ListConfirmed returns all confirmed days in ascending order
func (l *Ledger) ListConfirmed(ctx context.Context) ([]ConfirmedDay, error) {
	var rows []ConfirmedDay
	if err := l.db.WithContext(ctx).Order("day").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list confirmed days: %w", err)
	}
	return rows, nil
}

// ReplaceExport replaces the exported records of the days from..to
// (inclusive) with records, so exporting a range twice leaves one copy.
// It returns the id of the new run.
func (l *Ledger) ReplaceExport(ctx context.Context, from, to string, records []billing.Record) (string, error) {
	if err := checkDay(from); err != nil {
		return "", err
	}
	if err := checkDay(to); err != nil {
		return "", err
	}

	runID := uuid.NewString()
	exportedAt := l.now().UTC()
	rows := make([]ExportRecord, 0, len(records))
	for _, r := range records {
		rows = append(rows, ExportRecord{
			ID:          uuid.NewString(),
			RunID:       runID,
			Day:         DayKey(r.Start),
			EntryID:     r.EntryID,
			CaseID:      r.CaseID,
			PhaseID:     r.PhaseID,
			WorktypeID:  r.WorktypeID,
			Description: r.Description,
			Start:       r.Start.UTC(),
			End:         r.End.UTC(),
			Source:      r.Source.String(),
			ExportedAt:  exportedAt,
		})
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day >= ? AND day <= ?", from, to).Delete(&ExportRecord{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	l.log.Info("export written",
		zap.String("run_id", runID),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("records", len(rows)),
	)
	return runID, nil
}

// ListExports returns the exported records of the days from..to in time order
func (l *Ledger) ListExports(ctx context.Context, from, to string) ([]ExportRecord, error) {
	var rows []ExportRecord
	err := l.db.WithContext(ctx).
		Where("day >= ? AND day <= ?", from, to).
		Order("start").Order("source").Order("entry_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return rows, nil
}

func checkDay(day string) error {
	if _, err := time.Parse(DayLayout, day); err != nil {
		return fmt.Errorf("invalid day %q: expected YYYY-MM-DD", day)
	}
	return nil
}
