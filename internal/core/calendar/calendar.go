// Package calendar holds the fixed-locale (Slovak) calendar used to match,
// count and display months.
package calendar

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Months are the canonical month names in calendar order.
var Months = [12]string{
	"Január", "Február", "Marec", "Apríl", "Máj", "Jún",
	"Júl", "August", "September", "Október", "November", "December",
}

// MonthNumber returns the 1-based number of a canonical month name, compared
// with Unicode case folding. ok is false for unknown names.
func MonthNumber(name string) (n int, ok bool) {
	// Casers are stateful and must not be shared between goroutines.
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	if want == "" {
		return 0, false
	}
	for i, m := range Months {
		if fold.String(m) == want {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthName returns the canonical name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return Months[m-1]
}

// YearString formats the year of t for display.
func YearString(t time.Time) string {
	return strconv.Itoa(t.Year())
}
