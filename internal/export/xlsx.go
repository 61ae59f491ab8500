package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/xolan/billable/internal/billing"
)

const (
	recordsSheet = "records"
	summarySheet = "summary"
)

// WriteXLSX writes a workbook with a records sheet and a per case summary
func WriteXLSX(w io.Writer, meta Metadata, records []billing.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}

	if err := writeRows(f, recordsSheet, recordRows(records)); err != nil {
		return err
	}
	if err := writeRows(f, summarySheet, summaryRows(meta, records)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func recordRows(records []billing.Record) [][]interface{} {
	header := make([]interface{}, len(CSVHeader))
	for i, h := range CSVHeader {
		header[i] = h
	}
	rows := [][]interface{}{header}
	for _, r := range Convert(records) {
		rows = append(rows, []interface{}{
			r.Date,
			r.Start.Format("15:04"),
			formatEnd(r.Start, r.End),
			r.Minutes,
			r.CaseID,
			r.PhaseID,
			r.WorktypeID,
			r.Source,
			r.EntryID,
			r.Description,
		})
	}
	return rows
}

func summaryRows(meta Metadata, records []billing.Record) [][]interface{} {
	rows := [][]interface{}{
		{"From", meta.From},
		{"To", meta.To},
		{"Timezone", meta.Timezone},
		{"Exported", meta.ExportTimestamp.Format("2006-01-02 15:04")},
		{},
		{"case", "rounded", "overtime", "padding", "total", "records"},
	}
	for _, s := range billing.ByCase(records) {
		caseID := s.CaseID
		if caseID == "" {
			caseID = "(no case)"
		}
		rows = append(rows, []interface{}{
			caseID,
			minutes(s.Rounded),
			minutes(s.Overtime),
			minutes(s.Padding),
			minutes(s.Total()),
			s.RecordCount,
		})
	}
	totals := billing.Totals(records)
	rows = append(rows, []interface{}{
		"total",
		minutes(totals.Rounded),
		minutes(totals.Overtime),
		minutes(totals.Padding),
		minutes(totals.Total()),
		totals.RecordCount,
	})
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
