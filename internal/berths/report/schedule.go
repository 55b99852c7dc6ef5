// Package report renders berth schedules as spreadsheet workbooks.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"portcall/pkg/model"
)

const (
	defaultSheet = "Sheet1"
	// maxSheetName is the Excel limit on sheet name length.
	maxSheetName = 31
)

var columns = []string{"Vessel", "Start", "End", "Hours"}

// SheetName is the worksheet title used for a berth.
func SheetName(berth string) string {
	if berth == "" {
		return defaultSheet
	}
	if len(berth) > maxSheetName {
		return berth[:maxSheetName]
	}
	return berth
}

// WriteSchedule writes one worksheet listing the berth's booked periods in
// start order. Times are UTC RFC 3339.
func WriteSchedule(w io.Writer, berth *model.Berth) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(berth.Name)
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	if err := writeHeader(f, sheet); err != nil {
		return err
	}

	for i, entry := range berth.Schedule() {
		row := []any{
			entry.VesselNumber,
			entry.Start.UTC().Format(time.RFC3339),
			entry.End.UTC().Format(time.RFC3339),
			hours(entry.End.Sub(entry.Start)),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string) error {
	if err := writeRow(f, sheet, 1, toRow(columns)); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}

func toRow(values []string) []any {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func hours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
