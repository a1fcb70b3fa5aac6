package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/conrad/backoffice/internal/domain/commission"
)

const commissionSheet = "Comisiones"

// CommissionFilename names the commission workbook after the month the range
// starts in, e.g. "Comisiones_Medicas_2024-03_CONRAD.xlsx".
func CommissionFilename(from time.Time, brandName string) string {
	token := strings.ReplaceAll(strings.ToUpper(brandName), " ", "_")
	return fmt.Sprintf("Comisiones_Medicas_%s_%s.xlsx", from.Format("2006-01"), token)
}

// BuildCommissionWorkbook renders the selected summaries as a single-sheet
// matrix: one row per physician, one column per study category that earned
// commission, a TOTAL column and a closing TOTAL GENERAL row. Summaries with
// Included=false are left out entirely, including their categories.
func BuildCommissionWorkbook(summaries []*commission.Summary, from, to time.Time, brand Brand) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("register styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", commissionSheet); err != nil {
		return nil, err
	}

	included := make([]*commission.Summary, 0, len(summaries))
	for _, s := range summaries {
		if s.Included {
			included = append(included, s)
		}
	}
	categories := categoryColumns(included)
	lastCol := 2 + len(categories) // name + categories + total

	title := fmt.Sprintf("%s - COMISIONES MÉDICAS", brand.Name)
	period := fmt.Sprintf("Período: %s - %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	if err := writeBanner(f, commissionSheet, st, lastCol, title, period); err != nil {
		return nil, err
	}

	headerRow := 4
	header := append([]string{"MÉDICO"}, categories...)
	header = append(header, "TOTAL")
	for i, label := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(commissionSheet, cell, label); err != nil {
			return nil, err
		}
	}
	if err := styleRange(f, commissionSheet, 1, headerRow, lastCol, headerRow, st.commissionHeader); err != nil {
		return nil, err
	}

	row := headerRow + 1
	grand := make(map[string]float64, len(categories))
	var grandTotal float64
	for _, s := range included {
		nameCell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(commissionSheet, nameCell, s.PhysicianName); err != nil {
			return nil, err
		}
		for i, cat := range categories {
			cell, _ := excelize.CoordinatesToCellName(i+2, row)
			amount := s.CategoryAmounts[cat]
			if err := f.SetCellValue(commissionSheet, cell, amount); err != nil {
				return nil, err
			}
			grand[cat] += amount
		}
		totalCell, _ := excelize.CoordinatesToCellName(lastCol, row)
		if err := f.SetCellValue(commissionSheet, totalCell, s.Total); err != nil {
			return nil, err
		}
		grandTotal += s.Total

		if err := styleRange(f, commissionSheet, 1, row, 1, row, st.cellAccent); err != nil {
			return nil, err
		}
		if err := styleRange(f, commissionSheet, 2, row, lastCol, row, st.commissionAmount); err != nil {
			return nil, err
		}
		row++
	}

	labelCell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellValue(commissionSheet, labelCell, "TOTAL GENERAL"); err != nil {
		return nil, err
	}
	for i, cat := range categories {
		cell, _ := excelize.CoordinatesToCellName(i+2, row)
		if err := f.SetCellValue(commissionSheet, cell, grand[cat]); err != nil {
			return nil, err
		}
	}
	totalCell, _ := excelize.CoordinatesToCellName(lastCol, row)
	if err := f.SetCellValue(commissionSheet, totalCell, grandTotal); err != nil {
		return nil, err
	}
	if err := styleRange(f, commissionSheet, 1, row, 1, row, st.totalLabel); err != nil {
		return nil, err
	}
	if err := styleRange(f, commissionSheet, 2, row, lastCol, row, st.commissionTotal); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(commissionSheet, "A", "A", 38); err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		first, _ := excelize.ColumnNumberToName(2)
		last, _ := excelize.ColumnNumberToName(lastCol)
		if err := f.SetColWidth(commissionSheet, first, last, 15); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// categoryColumns returns the alphabetical union of category names that carry
// a non-zero amount in any included summary.
func categoryColumns(included []*commission.Summary) []string {
	seen := make(map[string]bool)
	for _, s := range included {
		for name, amount := range s.CategoryAmounts {
			if amount != 0 {
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeBanner(f *excelize.File, sheet string, st *styles, lastCol int, title, period string) error {
	titleCell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetCellValue(sheet, titleCell, title); err != nil {
		return err
	}
	periodCell, _ := excelize.CoordinatesToCellName(1, 2)
	if err := f.SetCellValue(sheet, periodCell, period); err != nil {
		return err
	}
	if lastCol > 1 {
		end, _ := excelize.CoordinatesToCellName(lastCol, 1)
		if err := f.MergeCell(sheet, titleCell, end); err != nil {
			return err
		}
		end, _ = excelize.CoordinatesToCellName(lastCol, 2)
		if err := f.MergeCell(sheet, periodCell, end); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, titleCell, titleCell, st.masthead); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, periodCell, periodCell, st.periodLabel); err != nil {
		return err
	}
	return f.SetRowHeight(sheet, 1, 24)
}

func styleRange(f *excelize.File, sheet string, startCol, startRow, endCol, endRow, styleID int) error {
	start, _ := excelize.CoordinatesToCellName(startCol, startRow)
	end, _ := excelize.CoordinatesToCellName(endCol, endRow)
	return f.SetCellStyle(sheet, start, end, styleID)
}
