package httpapi

import (
	"bytes"
	"fmt"

	"wisefido-monitor/internal/models"

	"github.com/xuri/excelize/v2"
)

// TrendExportHeader column order of the trend sheet
var TrendExportHeader = []string{
	"Sample",
	"Heart Rate",
	"BP Systolic",
	"BP Diastolic",
	"Temperature",
	"Respiration Rate",
	"SpO2",
	"EtCO2",
}

const (
	trendSheet   = "Trends"
	patientSheet = "Patient"
)

// GenerateTrendExport renders the trend buffers of p as an XLSX workbook:
// a "Trends" sheet (oldest sample first) and a "Patient" summary sheet.
func GenerateTrendExport(p models.Patient) ([]byte, error) {
	f := excelize.NewFile()

	if _, err := f.NewSheet(trendSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(patientSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	// positions shift after the delete
	index, err := f.GetSheetIndex(trendSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to find sheet %s: %w", trendSheet, err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range TrendExportHeader {
		if err := setCellValue(f, trendSheet, col+1, 1, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(TrendExportHeader), 1)
	if err := f.SetCellStyle(trendSheet, "A1", last, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetColWidth(trendSheet, "A", "H", 16); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for i, row := range trendRows(p.Trends) {
		for col, value := range row {
			if value == nil {
				continue
			}
			if err := setCellValue(f, trendSheet, col+1, i+2, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", i+2, col+1, err)
			}
		}
	}

	if err := f.SetPanes(trendSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	summary := [][]interface{}{
		{"Patient ID", p.ID},
		{"Name", p.Name},
		{"Age", p.Age},
		{"Condition", p.Condition},
		{"Location", string(p.Location)},
		{"Room", p.Room},
	}
	for i, pair := range summary {
		for col, value := range pair {
			if err := setCellValue(f, patientSheet, col+1, i+1, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write patient sheet: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

// trendRows one row per position of the longest buffer; nil marks a missing sample
func trendRows(t models.Trends) [][]interface{} {
	n := 0
	for _, l := range []int{t.HeartRate.Len(), t.BP.Len(), t.Temperature.Len(), t.RespirationRate.Len(), t.SpO2.Len(), t.EtCO2.Len()} {
		if l > n {
			n = l
		}
	}

	scalar := func(b interface{ At(int) (float64, bool) }, i int) interface{} {
		if v, ok := b.At(i); ok {
			return v
		}
		return nil
	}

	rows := make([][]interface{}, 0, n)
	for i := 0; i < n; i++ {
		row := []interface{}{i + 1, scalar(t.HeartRate, i), nil, nil,
			scalar(t.Temperature, i), scalar(t.RespirationRate, i), scalar(t.SpO2, i), scalar(t.EtCO2, i)}
		if bp, ok := t.BP.At(i); ok {
			row[2], row[3] = bp.Systolic, bp.Diastolic
		}
		rows = append(rows, row)
	}
	return rows
}

func setCellValue(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
