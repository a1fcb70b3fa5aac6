package settlement

import (
	"fmt"
	"strings"
	"time"
)

// Half selects which quincena of the month a settlement covers.
type Half int

const (
	FirstHalf  Half = 1
	SecondHalf Half = 2
)

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish month name, title-cased.
func MonthName(month time.Month) string {
	return spanishMonths[month-1]
}

// Window returns the inclusive half-month range: days 1 to 15 for the first
// half, day 16 through the last day of the month for the second. The end
// bound sits at the final second of its day so date comparisons stay
// inclusive, and February's last day follows the calendar.
func Window(year int, month time.Month, half Half) (time.Time, time.Time) {
	if half == FirstHalf {
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, month, 15, 23, 59, 59, 0, time.UTC)
		return start, end
	}
	start := time.Date(year, month, 16, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	end := time.Date(year, month, lastDay, 23, 59, 59, 0, time.UTC)
	return start, end
}

// HalfLabel renders the quincena ordinal, e.g. "PRIMERA QUINCENA".
func HalfLabel(half Half) string {
	if half == SecondHalf {
		return "SEGUNDA QUINCENA"
	}
	return "PRIMERA QUINCENA"
}

// PeriodLabel renders the full statement period, e.g.
// "PRIMERA QUINCENA MARZO 2024".
func PeriodLabel(year int, month time.Month, half Half) string {
	return fmt.Sprintf("%s %s %d", HalfLabel(half), strings.ToUpper(MonthName(month)), year)
}
