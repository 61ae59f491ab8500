package entry

import "time"

// Entry represents a single raw time interval logged by the user.
// End is nil while the work is still ongoing.
type Entry struct {
	ID          string     `json:"id"`
	PhaseID     string     `json:"phase_id,omitempty"`
	WorktypeID  string     `json:"worktype_id,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Description string     `json:"description"`
	RawInput    string     `json:"raw_input,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// IsOngoing reports whether the entry has no end time yet
func (e Entry) IsOngoing() bool {
	return e.End == nil
}

// Duration returns the logged duration, or zero for ongoing entries
func (e Entry) Duration() time.Duration {
	if e.End == nil {
		return 0
	}
	return e.End.Sub(e.Start)
}
