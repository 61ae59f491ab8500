package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xolan/billable/internal/billing"
	"github.com/xolan/billable/internal/export"
	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/timeutil"
)

// Format is an export target
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatLedger Format = "ledger"
)

// Formats lists the supported export targets
var Formats = []Format{FormatJSON, FormatCSV, FormatXLSX, FormatLedger}

// ParseFormat resolves a format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q: use json, csv, xlsx or ledger", name)
}

// IsFile reports whether the format is written to a file or stream
func (f Format) IsFile() bool {
	return f != FormatLedger
}

// ExportService writes billable records to files and to the ledger
type ExportService struct {
	reconcile *ReconcileService
	ledger    *LedgerService
	loc       *time.Location
	now       func() time.Time
}

// Write reconciles r and writes the records matching f to w in format.
// The ledger format is not a stream; use ToLedger.
func (s *ExportService) Write(ctx context.Context, format Format, w io.Writer, r timeutil.Range, f *filter.Filter) (*ExportResult, error) {
	res, err := s.reconcile.Run(r, f)
	if err != nil {
		return nil, err
	}

	meta := export.NewMetadata(r.FromDay(), r.ToDay(), s.loc, res.Records, s.now())
	switch format {
	case FormatJSON:
		err = export.WriteJSON(w, meta, res.Records)
	case FormatCSV:
		err = export.WriteCSV(w, res.Records)
	case FormatXLSX:
		err = export.WriteXLSX(w, meta, res.Records)
	default:
		return nil, fmt.Errorf("format %q cannot be written to a file", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write %s export: %w", format, err)
	}

	return s.result(ctx, r, res.Records, "")
}

// ToLedger reconciles r and replaces the ledger's records for its days.
// Filters do not apply: the ledger always holds complete days.
func (s *ExportService) ToLedger(ctx context.Context, r timeutil.Range) (*ExportResult, error) {
	res, err := s.reconcile.Run(r, nil)
	if err != nil {
		return nil, err
	}

	runID, err := s.ledger.replaceExport(ctx, r, res.Records)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, r, res.Records, runID)
}

func (s *ExportService) result(ctx context.Context, r timeutil.Range, records []billing.Record, runID string) (*ExportResult, error) {
	unconfirmed, err := s.ledger.Unconfirmed(ctx, r)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Range:           r,
		Records:         len(records),
		Minutes:         int(billing.Totals(records).Total() / time.Minute),
		RunID:           runID,
		UnconfirmedDays: unconfirmed,
	}, nil
}
