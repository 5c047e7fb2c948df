// Package hijri converts Gregorian dates to the tabular Islamic calendar.
//
// The tabular calendar uses a fixed 30-year cycle of 11 leap years and can
// differ by a day from sighting-based or Umm al-Qura dates.
package hijri

import (
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/astro"
)

// Date is a day of the Islamic calendar.
type Date struct {
	Year  int
	Month int // 1 = Muharram
	Day   int
}

var monthNames = [...]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Ula", "Jumada al-Akhirah", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// FromGregorian converts a Gregorian calendar day.
func FromGregorian(year int, month time.Month, day int) Date {
	jdn := int(math.Floor(astro.JulianDay(year, month, day) + 0.5))

	l := jdn - 1948440 + 10632
	n := floorDiv(l-1, 10631)
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	m := (24 * l) / 709

	return Date{
		Year:  30*n + j - 30,
		Month: m,
		Day:   l - (709*m)/24,
	}
}

// MonthName returns the transliterated month name.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > len(monthNames) {
		return ""
	}
	return monthNames[d.Month-1]
}

// Format returns the date as "DD MonthName YYYY AH".
func (d Date) Format() string {
	if d.Year < 1 || d.MonthName() == "" {
		return ""
	}
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName(), d.Year)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
