package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/storage"
	"github.com/xolan/billable/internal/timer"
)

// Timer-specific errors
var (
	ErrTimerAlreadyRunning = errors.New("timer is already running")
	ErrNoTimerRunning      = errors.New("no timer is running")
)

// TimerService provides operations for managing the timer
type TimerService struct {
	timerPath string
	store     *storage.Store
	validate  *validator
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

// Start starts a new timer with the given description ("<text> [@phase]
// [#worktype]"). If force is true, it will override any existing timer.
// Returns the existing timer state if one is running and force is false.
func (s *TimerService) Start(ctx context.Context, description string, force bool) (*timer.TimerState, *timer.TimerState, error) {
	cleanDesc, phaseID, worktypeID := entry.ParsePhaseAndWorktype(strings.TrimSpace(description))
	if err := s.validate.References(cleanDesc, phaseID, worktypeID); err != nil {
		return nil, nil, err
	}

	existing, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load existing timer: %w", err)
	}
	if existing != nil && !force {
		return nil, existing, ErrTimerAlreadyRunning
	}

	now := s.now().Truncate(time.Second)
	if err := s.validate.Unlocked(ctx, now); err != nil {
		return nil, existing, err
	}

	state := timer.TimerState{
		ID:          s.newID(),
		StartedAt:   now,
		Description: cleanDesc,
		PhaseID:     phaseID,
		WorktypeID:  worktypeID,
	}
	if err := timer.SaveTimerState(s.timerPath, state); err != nil {
		return nil, nil, fmt.Errorf("failed to save timer state: %w", err)
	}
	s.log.Debug("timer started", zap.String("id", state.ID))

	return &state, existing, nil
}

// Stop stops the current timer and stores it as a finished entry. The entry
// is validated like a manual one; on failure the timer keeps running so it
// can be cancelled.
func (s *TimerService) Stop(ctx context.Context) (*entry.Entry, *timer.TimerState, error) {
	state, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load timer state: %w", err)
	}
	if state == nil {
		return nil, nil, ErrNoTimerRunning
	}

	e := state.Finish(s.now().Truncate(time.Second))
	if err := s.validate.Entry(ctx, e); err != nil {
		return nil, state, err
	}

	if err := s.store.Append(e); err != nil {
		return nil, nil, fmt.Errorf("failed to save entry: %w", err)
	}

	// The entry is saved; a stale timer file is overwritten on next start
	if err := timer.ClearTimerState(s.timerPath); err != nil {
		s.log.Warn("failed to clear timer", zap.Error(err))
	}

	return &e, state, nil
}

// Cancel cancels the current timer without creating an entry
func (s *TimerService) Cancel() (*timer.TimerState, error) {
	state, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load timer state: %w", err)
	}
	if state == nil {
		return nil, ErrNoTimerRunning
	}

	if err := timer.ClearTimerState(s.timerPath); err != nil {
		return nil, fmt.Errorf("failed to clear timer: %w", err)
	}
	return state, nil
}

// Status returns the current timer status
func (s *TimerService) Status() (*TimerStatus, error) {
	state, err := timer.LoadTimerState(s.timerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load timer state: %w", err)
	}

	status := &TimerStatus{
		Running: state != nil,
		State:   state,
	}
	if state != nil {
		status.ElapsedTime = state.Elapsed(s.now())
	}
	return status, nil
}

// IsRunning checks if a timer is currently running
func (s *TimerService) IsRunning() (bool, error) {
	return timer.IsTimerRunning(s.timerPath)
}
