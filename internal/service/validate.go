package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/timeutil"
)

// Validation errors returned before an entry is stored
var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrDayLocked        = errors.New("day is confirmed")
	ErrUnknownPhase     = errors.New("unknown phase")
	ErrPhaseInactive    = errors.New("phase is not active")
	ErrUnknownWorktype  = errors.New("unknown worktype")
	ErrWorktypeInactive = errors.New("worktype is not active")
	ErrEmptyDescription = errors.New("description cannot be empty")
)

// dayLocker reports whether the day containing t is confirmed
type dayLocker interface {
	IsLocked(ctx context.Context, t time.Time) (bool, error)
}

// validator checks entries against the catalog and the confirmed days
type validator struct {
	catalog *CatalogService
	locks   dayLocker
	loc     *time.Location
}

// References checks description, phase and worktype. Phase and worktype are
// only checked once a catalog has been synced.
func (v *validator) References(description, phaseID, worktypeID string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}

	cat := v.catalog.Get()
	if cat.IsEmpty() {
		return nil
	}
	if phaseID != "" {
		p, ok := cat.Phase(phaseID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPhase, phaseID)
		}
		if !p.Active {
			return fmt.Errorf("%w: %s", ErrPhaseInactive, phaseID)
		}
	}
	if worktypeID != "" {
		w, ok := cat.Worktype(worktypeID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownWorktype, worktypeID)
		}
		if !w.Active {
			return fmt.Errorf("%w: %s", ErrWorktypeInactive, worktypeID)
		}
	}
	return nil
}

// Times checks that a finished entry ends after it starts and stays within
// its day. Ending at midnight is allowed.
func (v *validator) Times(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end %s is not after start %s", ErrInvalidTimeRange,
			end.In(v.loc).Format("15:04"), start.In(v.loc).Format("15:04"))
	}
	midnight := timeutil.StartOfDay(start.In(v.loc)).AddDate(0, 0, 1)
	if end.After(midnight) {
		return fmt.Errorf("%w: entries cannot cross midnight", ErrInvalidTimeRange)
	}
	return nil
}

// Unlocked fails with ErrDayLocked when the day of t is confirmed
func (v *validator) Unlocked(ctx context.Context, t time.Time) error {
	locked, err := v.locks.IsLocked(ctx, t)
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("%w: %s", ErrDayLocked, t.In(v.loc).Format(timeutil.DayLayout))
	}
	return nil
}

// Entry runs every check on a finished entry
func (v *validator) Entry(ctx context.Context, e entry.Entry) error {
	if err := v.References(e.Description, e.PhaseID, e.WorktypeID); err != nil {
		return err
	}
	if e.End != nil {
		if err := v.Times(e.Start, *e.End); err != nil {
			return err
		}
	}
	return v.Unlocked(ctx, e.Start)
}
