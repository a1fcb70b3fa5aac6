package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/conrad/backoffice/internal/domain/settlement"
)

// SettlementFilename names the half-month statement workbook, e.g.
// "Cuadre_Quincenal_1Q_Marzo_2024.xlsx".
func SettlementFilename(year int, month time.Month, half settlement.Half) string {
	return fmt.Sprintf("Cuadre_Quincenal_%dQ_%s_%d.xlsx", half, settlement.MonthName(month), year)
}

// BuildSettlementWorkbook renders one worksheet per referrer group, in group
// order. Each sheet carries the brand masthead, the quincena label, a
// date/patient/study/amount table and a closing green total row. Studies
// performed on a weekend carry a red INHABIL marker.
func BuildSettlementWorkbook(groups []*settlement.Group, year int, month time.Month, half settlement.Half, brand Brand) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("register styles: %w", err)
	}

	used := make(map[string]bool)
	for _, g := range groups {
		sheet := uniqueSheetName(used, g.Key)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if err := writeSettlementSheet(f, sheet, st, g, year, month, half, brand); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return f, nil
}

// uniqueSheetName sanitizes the group key and disambiguates collisions that
// sanitizing can introduce, keeping the result within the 30-rune limit.
func uniqueSheetName(used map[string]bool, key string) string {
	name := sanitizeSheetName(key)
	if !used[name] {
		used[name] = true
		return name
	}
	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := name
		if runes := []rune(base); len(runes)+len(suffix) > 30 {
			base = string(runes[:30-len(suffix)])
		}
		candidate := base + suffix
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

// noNameFallback stands in for records saved without a patient name.
const noNameFallback = "Sin nombre"

func writeSettlementSheet(f *excelize.File, sheet string, st *styles, g *settlement.Group, year int, month time.Month, half settlement.Half, brand Brand) error {
	const lastCol = 4

	setMerged := func(row int, value string, styleID int) error {
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(lastCol, row)
		if err := f.SetCellValue(sheet, start, value); err != nil {
			return err
		}
		if err := f.MergeCell(sheet, start, end); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, start, start, styleID)
	}

	if err := setMerged(1, brand.Name, st.masthead); err != nil {
		return err
	}
	if err := setMerged(2, brand.Subtitle, st.cell); err != nil {
		return err
	}
	if err := setMerged(3, "ESTADO DE CUENTA "+settlement.HalfLabel(half), st.periodLabel); err != nil {
		return err
	}
	if err := setMerged(4, strings.ToUpper(g.Key), st.cellAccent); err != nil {
		return err
	}
	monthLine := fmt.Sprintf("%s %d", strings.ToUpper(settlement.MonthName(month)), year)
	if err := setMerged(5, monthLine, st.cell); err != nil {
		return err
	}

	headerRow := 7
	for i, label := range []string{"NOMBRE DEL PACIENTE", "FECHA", "ESTUDIO", "Q"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
	}
	if err := styleRange(f, sheet, 1, headerRow, lastCol, headerRow, st.settlementHeader); err != nil {
		return err
	}

	row := headerRow + 1
	for _, r := range g.Records {
		patient := noNameFallback
		if r.PatientName != nil && *r.PatientName != "" {
			patient = *r.PatientName
		}
		patientCell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet, patientCell, patient); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, patientCell, patientCell, st.cell); err != nil {
			return err
		}

		dateCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, dateCell, r.VisitDate.Format("02/01/06")); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, dateCell, dateCell, st.cell); err != nil {
			return err
		}

		// Weekend visits get flagged on the study text, not the date.
		studyCell, _ := excelize.CoordinatesToCellName(3, row)
		studyStyle := st.cell
		studyText := r.StudyDescription()
		if isWeekend(r.VisitDate) {
			studyText += " INHABIL"
			studyStyle = st.weekendStudy
		}
		if err := f.SetCellValue(sheet, studyCell, studyText); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, studyCell, studyCell, studyStyle); err != nil {
			return err
		}

		amountCell, _ := excelize.CoordinatesToCellName(4, row)
		if err := f.SetCellValue(sheet, amountCell, r.Total()); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, amountCell, amountCell, st.settlementAmount); err != nil {
			return err
		}
		row++
	}

	labelCell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellValue(sheet, labelCell, "TOTAL"); err != nil {
		return err
	}
	totalCell, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetCellValue(sheet, totalCell, g.Total()); err != nil {
		return err
	}
	if err := styleRange(f, sheet, 1, row, 3, row, st.totalLabel); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, totalCell, totalCell, st.settlementTotal); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 34); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 40); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "D", "D", 14)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
