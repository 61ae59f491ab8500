// Package export writes billable records as JSON, CSV or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xolan/billable/internal/billing"
)

// Metadata describes an export run
type Metadata struct {
	ExportTimestamp time.Time `json:"export_timestamp"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	Timezone        string    `json:"timezone"`
	TotalRecords    int       `json:"total_records"`
	TotalMinutes    int       `json:"total_minutes"`
	OvertimeMinutes int       `json:"overtime_minutes"`
	PaddingMinutes  int       `json:"padding_minutes"`
}

// Record is the serialised form of a billable record
type Record struct {
	Date          string     `json:"date"`
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	Minutes       int        `json:"minutes"`
	CaseID        string     `json:"case,omitempty"`
	PhaseID       string     `json:"phase,omitempty"`
	WorktypeID    string     `json:"worktype,omitempty"`
	Source        string     `json:"source"`
	EntryID       string     `json:"entry_id"`
	Description   string     `json:"description"`
	OriginalStart *time.Time `json:"original_start,omitempty"`
	OriginalEnd   *time.Time `json:"original_end,omitempty"`
}

// CSVHeader is the first row of a CSV export
var CSVHeader = []string{"date", "start", "end", "minutes", "case", "phase", "worktype", "source", "entry_id", "description"}

// NewMetadata summarises records for the given day range
func NewMetadata(from, to string, loc *time.Location, records []billing.Record, now time.Time) Metadata {
	totals := billing.Totals(records)
	tz := "Local"
	if loc != nil {
		tz = loc.String()
	}
	return Metadata{
		ExportTimestamp: now,
		From:            from,
		To:              to,
		Timezone:        tz,
		TotalRecords:    totals.RecordCount,
		TotalMinutes:    minutes(totals.Total()),
		OvertimeMinutes: minutes(totals.Overtime),
		PaddingMinutes:  minutes(totals.Padding),
	}
}

// Convert maps billing records to their serialised form
func Convert(records []billing.Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, Record{
			Date:          r.Start.Format("2006-01-02"),
			Start:         r.Start,
			End:           r.End,
			Minutes:       minutes(r.Duration()),
			CaseID:        r.CaseID,
			PhaseID:       r.PhaseID,
			WorktypeID:    r.WorktypeID,
			Source:        r.Source.String(),
			EntryID:       r.EntryID,
			Description:   r.Description,
			OriginalStart: r.OriginalStart,
			OriginalEnd:   r.OriginalEnd,
		})
	}
	return out
}

// WriteJSON writes metadata and records as indented JSON
func WriteJSON(w io.Writer, meta Metadata, records []billing.Record) error {
	output := struct {
		Metadata Metadata `json:"metadata"`
		Records  []Record `json:"records"`
	}{
		Metadata: meta,
		Records:  Convert(records),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

// WriteCSV writes records as CSV with a header row
func WriteCSV(w io.Writer, records []billing.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range Convert(records) {
		row := []string{
			r.Date,
			r.Start.Format("15:04"),
			formatEnd(r.Start, r.End),
			strconv.Itoa(r.Minutes),
			r.CaseID,
			r.PhaseID,
			r.WorktypeID,
			r.Source,
			r.EntryID,
			r.Description,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// formatEnd prints an end at the following midnight as 24:00
func formatEnd(start, end time.Time) string {
	if end.Hour() == 0 && end.Minute() == 0 && end.After(start) && end.Day() != start.Day() {
		return "24:00"
	}
	return end.Format("15:04")
}

func minutes(d time.Duration) int {
	return int(d / time.Minute)
}
