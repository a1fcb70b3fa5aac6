package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/conrad/backoffice/internal/domain/commission"
)

var testBrand = Brand{Name: "CONRAD", Subtitle: "Centro de Diagnóstico"}

var raw = excelize.Options{RawCellValue: true}

func summary(name string, amounts map[string]float64) *commission.Summary {
	s := &commission.Summary{
		PhysicianID:     uuid.New(),
		PhysicianName:   name,
		CategoryAmounts: amounts,
		Included:        true,
	}
	for _, v := range amounts {
		s.Total += v
	}
	return s
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCommissionFilename(t *testing.T) {
	got := CommissionFilename(date(2024, time.March, 1), "CONRAD")
	if got != "Comisiones_Medicas_2024-03_CONRAD.xlsx" {
		t.Errorf("filename = %q", got)
	}
}

func TestCommissionFilenameBrandWithSpaces(t *testing.T) {
	// The month token comes from the start of the range even when the range
	// crosses into the next month.
	got := CommissionFilename(date(2024, time.November, 20), "Clínica Central")
	if got != "Comisiones_Medicas_2024-11_CLÍNICA_CENTRAL.xlsx" {
		t.Errorf("filename = %q", got)
	}
}

func TestBuildCommissionWorkbookLayout(t *testing.T) {
	summaries := []*commission.Summary{
		summary("Dra. Morales", map[string]float64{"USG": 30, "RX": 5}),
		summary("Dr. García", map[string]float64{"USG": 12}),
	}

	f, err := BuildCommissionWorkbook(summaries, date(2024, time.March, 1), date(2024, time.March, 31), testBrand)
	if err != nil {
		t.Fatalf("BuildCommissionWorkbook: %v", err)
	}

	// Categories appear alphabetically between the name and TOTAL columns.
	for cell, want := range map[string]string{
		"A4": "MÉDICO",
		"B4": "RX",
		"C4": "USG",
		"D4": "TOTAL",
		"A5": "Dra. Morales",
		"A6": "Dr. García",
		"A7": "TOTAL GENERAL",
	} {
		got, err := f.GetCellValue(commissionSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	for cell, want := range map[string]string{
		"B5": "5",
		"C5": "30",
		"D5": "35",
		"B6": "0",
		"C6": "12",
		"D6": "12",
		"B7": "5",
		"C7": "42",
		"D7": "47",
	} {
		got, err := f.GetCellValue(commissionSheet, cell, raw)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestBuildCommissionWorkbookExcludesUnselected(t *testing.T) {
	excluded := summary("Dr. Fuera", map[string]float64{"TAC": 99})
	excluded.Included = false
	summaries := []*commission.Summary{
		summary("Dra. Morales", map[string]float64{"USG": 30}),
		excluded,
	}

	f, err := BuildCommissionWorkbook(summaries, date(2024, time.March, 1), date(2024, time.March, 31), testBrand)
	if err != nil {
		t.Fatalf("BuildCommissionWorkbook: %v", err)
	}

	// The excluded physician's category must not leave an empty column behind.
	if got, _ := f.GetCellValue(commissionSheet, "B4"); got != "USG" {
		t.Errorf("B4 = %q, want USG", got)
	}
	if got, _ := f.GetCellValue(commissionSheet, "C4"); got != "TOTAL" {
		t.Errorf("C4 = %q, want TOTAL", got)
	}
	rows, err := f.GetRows(commissionSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	for _, row := range rows {
		for _, cell := range row {
			if cell == "Dr. Fuera" || cell == "TAC" {
				t.Fatalf("excluded summary leaked into the sheet: %v", row)
			}
		}
	}
}

func TestBuildCommissionWorkbookEmpty(t *testing.T) {
	f, err := BuildCommissionWorkbook(nil, date(2024, time.March, 1), date(2024, time.March, 31), testBrand)
	if err != nil {
		t.Fatalf("BuildCommissionWorkbook: %v", err)
	}
	if got, _ := f.GetCellValue(commissionSheet, "A4"); got != "MÉDICO" {
		t.Errorf("A4 = %q, want header even with no summaries", got)
	}
	if got, _ := f.GetCellValue(commissionSheet, "A5"); got != "TOTAL GENERAL" {
		t.Errorf("A5 = %q, want TOTAL GENERAL", got)
	}
}

func TestBuildCommissionWorkbookBanner(t *testing.T) {
	f, err := BuildCommissionWorkbook(nil, date(2024, time.September, 10), date(2024, time.October, 5), testBrand)
	if err != nil {
		t.Fatalf("BuildCommissionWorkbook: %v", err)
	}
	if got, _ := f.GetCellValue(commissionSheet, "A1"); got != "CONRAD - COMISIONES MÉDICAS" {
		t.Errorf("A1 = %q", got)
	}
	// The banner shows both ends of the range, not just a month name.
	if got, _ := f.GetCellValue(commissionSheet, "A2"); got != "Período: 10/09/2024 - 05/10/2024" {
		t.Errorf("A2 = %q", got)
	}
}
