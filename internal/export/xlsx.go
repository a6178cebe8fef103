package export

import (
	"fmt"

	"github.com/piwi3910/roomfit/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	placementsSheet = "Placements"
	summarySheet    = "Summary"
)

var placementHeaders = []interface{}{"Item", "Length (mm)", "Width (mm)", "Center X", "Center Y", "Angle", "Position", "Status"}

// ExportXLSX writes a workbook with one row per requested item on the
// Placements sheet and the overall statistics on the Summary sheet.
func ExportXLSX(path string, result model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("adding summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetRow(placementsSheet, "A1", &placementHeaders); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(placementsSheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2
	for _, p := range result.Placements {
		position := "wall"
		if p.Interior {
			position = "interior"
		}
		values := []interface{}{
			p.Item.Name, p.Item.Length, p.Item.Width,
			p.Center.X, p.Center.Y, p.Angle, position, model.StatusPlaced.String(),
		}
		if err := writeRow(f, placementsSheet, row, values); err != nil {
			return err
		}
		row++
	}
	for _, it := range result.Unplaced {
		values := []interface{}{it.Name, it.Length, it.Width, "", "", "", "", model.StatusUnplaceable.String()}
		if err := writeRow(f, placementsSheet, row, values); err != nil {
			return err
		}
		row++
	}

	summary := [][]interface{}{
		{"Feasible", result.Feasible},
		{"Items placed", len(result.Placements)},
		{"Items unplaced", len(result.Unplaced)},
		{"Room area (mm²)", result.RoomArea},
		{"Used area (mm²)", result.UsedArea()},
		{"Fill ratio (%)", result.FillRatio()},
	}
	for i, values := range summary {
		if err := writeRow(f, summarySheet, i+1, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(placementsSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	return f.SaveAs(path)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell reference for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
