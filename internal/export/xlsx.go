package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tupyy/async-services/internal/models"
)

const historySheet = "history"

var historyHeader = []any{"ID", "Name", "Kind", "Status", "Result", "Error", "Queued At", "Started At", "Finished At", "Duration (ms)"}

// WriteHistoryXLSX writes records as a workbook with a single "history" sheet.
func WriteHistoryXLSX(w io.Writer, records []models.TaskRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(historySheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", historyHeader); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row(r)); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func row(r models.TaskRecord) []any {
	started := ""
	if r.StartedAt != nil {
		started = r.StartedAt.UTC().Format(time.RFC3339)
	}
	return []any{
		r.ID,
		r.Name,
		r.Kind,
		string(r.Status),
		string(r.Result),
		r.Error,
		r.QueuedAt.UTC().Format(time.RFC3339),
		started,
		r.FinishedAt.UTC().Format(time.RFC3339),
		r.Duration().Milliseconds(),
	}
}
