// Package timer keeps the single running entry between the start and stop
// commands.
package timer

import (
	"encoding/json"
	"os"
	"time"

	"github.com/xolan/billable/internal/entry"
	"github.com/xolan/billable/internal/osutil"
)

// TimerFile is the name of the JSON timer state file
const TimerFile = "timer.json"

// TimerState represents the state of an active timer
type TimerState struct {
	// ID becomes the entry id once the timer is stopped
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	Description string    `json:"description"`
	PhaseID     string    `json:"phase_id,omitempty"`
	WorktypeID  string    `json:"worktype_id,omitempty"`
}

// Entry returns the running timer as an ongoing entry
func (s TimerState) Entry() entry.Entry {
	return entry.Entry{
		ID:          s.ID,
		PhaseID:     s.PhaseID,
		WorktypeID:  s.WorktypeID,
		Start:       s.StartedAt,
		Description: s.Description,
	}
}

// Finish returns the finished entry for a timer stopped at end
func (s TimerState) Finish(end time.Time) entry.Entry {
	e := s.Entry()
	e.End = &end
	e.RawInput = entry.FormatRawInput(s.Description, s.PhaseID, s.WorktypeID, s.StartedAt, end)
	return e
}

// Elapsed returns the running time at now
func (s TimerState) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

// GetTimerPath returns the default location of the timer file
func GetTimerPath() (string, error) {
	return osutil.AppPath(TimerFile)
}

// SaveTimerState writes the timer state atomically (temp file, then rename)
func SaveTimerState(path string, state TimerState) error {
	// TimerState contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(state, "", "  ")

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

// LoadTimerState reads the timer state. It returns nil when no timer is
// running and an error when the file exists but cannot be parsed.
func LoadTimerState(path string) (*TimerState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state TimerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ClearTimerState removes the timer file; a missing file is not an error
func ClearTimerState(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsTimerRunning reports whether a timer file exists and parses
func IsTimerRunning(path string) (bool, error) {
	state, err := LoadTimerState(path)
	if err != nil {
		return false, err
	}
	return state != nil, nil
}
