package billing

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/billable/internal/entry"
)

// Record is one billable interval handed to export
type Record struct {
	EntryID     string
	CaseID      string
	PhaseID     string
	WorktypeID  string
	Description string
	Start       time.Time
	End         time.Time
	Source      Source

	// OriginalStart and OriginalEnd are nil for padding
	OriginalStart *time.Time
	OriginalEnd   *time.Time
}

// Duration returns the billed duration of the record
func (r Record) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Result is the outcome of a reconciliation run
type Result struct {
	// Records holds rounded entries and padding merged in time order
	Records  []Record
	Rounded  []Rounded
	Paddings []Padding
	// Skipped lists entry ids that were not billed: ongoing entries and
	// entries absorbed while resolving rounding overlaps
	Skipped []string
}

// Reconciler runs the rounding, overlap and minimum billing stages in order
type Reconciler struct {
	customers CustomerResolver
	cases     CaseResolver
	next      NextEntryFinder
	location  *time.Location
	log       *zap.Logger
}

// Option configures a Reconciler
type Option func(*Reconciler)

// WithLogger sets the logger used for debug output
func WithLogger(log *zap.Logger) Option {
	return func(r *Reconciler) {
		if log != nil {
			r.log = log
		}
	}
}

// WithLocation converts entries into loc before reconciling. The 23:55 cutoff
// is evaluated in this location.
func WithLocation(loc *time.Location) Option {
	return func(r *Reconciler) {
		r.location = loc
	}
}

// NewReconciler creates a Reconciler. Any resolver may be nil; the stage that
// needs it then behaves as if no data was found.
func NewReconciler(customers CustomerResolver, cases CaseResolver, next NextEntryFinder, opts ...Option) *Reconciler {
	r := &Reconciler{
		customers: customers,
		cases:     cases,
		next:      next,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile turns raw entries into billable records. It is a pure function of
// its inputs and the resolver answers, and is safe to call concurrently as long
// as the resolvers are.
func (r *Reconciler) Reconcile(entries []entry.Entry) Result {
	entries = r.localize(entries)

	rounded := Round(entries)
	resolved := MarkOverlaps(Postpone(rounded, r.customers))
	paddings := Pad(resolved, r.cases, r.next)

	result := Result{
		Rounded:  resolved,
		Paddings: paddings,
		Skipped:  skippedIDs(entries, resolved),
	}

	records := make([]Record, 0, len(resolved)+len(paddings))
	for _, e := range resolved {
		records = append(records, r.fromRounded(e))
	}
	for _, p := range paddings {
		records = append(records, fromPadding(p))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Start.Before(records[j].Start)
	})
	result.Records = records

	r.log.Debug("reconciled entries",
		zap.Int("entries", len(entries)),
		zap.Int("rounded", len(resolved)),
		zap.Int("paddings", len(paddings)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result
}

func (r *Reconciler) localize(entries []entry.Entry) []entry.Entry {
	if r.location == nil {
		return entries
	}
	localized := make([]entry.Entry, len(entries))
	for i, e := range entries {
		e.Start = e.Start.In(r.location)
		if e.End != nil {
			end := e.End.In(r.location)
			e.End = &end
		}
		localized[i] = e
	}
	return localized
}

func (r *Reconciler) fromRounded(e Rounded) Record {
	originalStart := e.OriginalStart
	originalEnd := e.OriginalEnd
	rec := Record{
		EntryID:       e.EntryID,
		PhaseID:       e.PhaseID,
		WorktypeID:    e.WorktypeID,
		Description:   e.Description,
		Start:         e.Start,
		End:           e.End,
		Source:        e.Source,
		OriginalStart: &originalStart,
		OriginalEnd:   &originalEnd,
	}
	if r.cases != nil && e.PhaseID != "" {
		if cfg, ok := r.cases.CaseForPhase(e.PhaseID); ok {
			rec.CaseID = cfg.CaseID
		} else {
			r.log.Debug("no case for phase", zap.String("entry", e.EntryID), zap.String("phase", e.PhaseID))
		}
	}
	return rec
}

func fromPadding(p Padding) Record {
	return Record{
		EntryID:     p.EntryID,
		CaseID:      p.CaseID,
		PhaseID:     p.PhaseID,
		WorktypeID:  p.WorktypeID,
		Description: p.Description,
		Start:       p.Start,
		End:         p.End,
		Source:      SourceMinimumBillableTime,
	}
}

func skippedIDs(entries []entry.Entry, kept []Rounded) []string {
	billed := make(map[string]bool, len(kept))
	for _, k := range kept {
		billed[k.EntryID] = true
	}
	var skipped []string
	for _, e := range entries {
		if !billed[e.ID] {
			skipped = append(skipped, e.ID)
		}
	}
	return skipped
}
