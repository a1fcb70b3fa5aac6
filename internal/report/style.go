package report

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Brand is the masthead identity printed on settlement statements.
type Brand struct {
	Name     string
	Subtitle string
}

const (
	fillCommissionHeader = "4472C4"
	fillSettlementHeader = "2E75B6"
	fillTotalGreen       = "92D050"
	fillAccentGray       = "E7E6E6"
	fillAccentBlue       = "D6EAF8"
	fontRed              = "FF0000"

	commissionCurrencyFmt = `"Q "#,##0.00`
	settlementCurrencyFmt = `Q#,##0.00`
)

// styles holds the per-file style IDs. Excelize style IDs are scoped to the
// file they were registered on, so a fresh set is built for every workbook.
type styles struct {
	commissionHeader int
	settlementHeader int
	masthead         int
	periodLabel      int
	cell             int
	cellAccent       int
	commissionAmount int
	settlementAmount int
	commissionTotal  int
	settlementTotal  int
	totalLabel       int
	weekendStudy      int
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{}
	var err error

	set := func(dst *int, style *excelize.Style) {
		if err != nil {
			return
		}
		*dst, err = f.NewStyle(style)
	}

	center := excelize.Alignment{Horizontal: "center", Vertical: "center"}
	commissionFmt := commissionCurrencyFmt
	settlementFmt := settlementCurrencyFmt

	set(&s.commissionHeader, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      solidFill(fillCommissionHeader),
		Alignment: &center,
		Border:    thinBorder(),
	})
	set(&s.settlementHeader, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      solidFill(fillSettlementHeader),
		Alignment: &center,
		Border:    thinBorder(),
	})
	set(&s.masthead, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &center,
	})
	set(&s.periodLabel, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      solidFill(fillAccentBlue),
		Alignment: &center,
	})
	set(&s.cell, &excelize.Style{Border: thinBorder()})
	set(&s.cellAccent, &excelize.Style{
		Fill:   solidFill(fillAccentGray),
		Border: thinBorder(),
	})
	set(&s.commissionAmount, &excelize.Style{
		CustomNumFmt: &commissionFmt,
		Border:       thinBorder(),
	})
	set(&s.settlementAmount, &excelize.Style{
		CustomNumFmt: &settlementFmt,
		Border:       thinBorder(),
	})
	set(&s.commissionTotal, &excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &commissionFmt,
		Fill:         solidFill(fillTotalGreen),
		Border:       thinBorder(),
	})
	set(&s.settlementTotal, &excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &settlementFmt,
		Fill:         solidFill(fillTotalGreen),
		Border:       thinBorder(),
	})
	set(&s.totalLabel, &excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   solidFill(fillTotalGreen),
		Border: thinBorder(),
	})
	set(&s.weekendStudy, &excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: fontRed},
		Border: thinBorder(),
	})

	if err != nil {
		return nil, err
	}
	return s, nil
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "BFBFBF", Style: 1}
	}
	return borders
}

var sheetNameStripper = strings.NewReplacer(
	":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "",
)

// sanitizeSheetName strips the characters xlsx forbids in worksheet names and
// truncates to 30 runes.
func sanitizeSheetName(name string) string {
	clean := sheetNameStripper.Replace(name)
	if runes := []rune(clean); len(runes) > 30 {
		clean = string(runes[:30])
	}
	if clean == "" {
		clean = "Hoja"
	}
	return clean
}
