// Package timeutil handles the calendar dates used across the club records.
// Evaluations and events carry a day, never a time of day, so every date is
// normalized to midnight UTC before it is stored or compared.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted and produced for dates.
const (
	LayoutBR  = "02/01/2006"
	LayoutISO = "2006-01-02"
)

// ErrInvalidDate is returned by ParseDate for unrecognized input.
var ErrInvalidDate = errors.New("invalid date")

// inputLayouts are tried in order by ParseDate.
var inputLayouts = []string{
	LayoutBR,
	"2/1/2006",
	"02-01-2006",
	LayoutISO,
}

// clock is replaced in tests.
var clock = time.Now

// Today returns the current local day as midnight UTC.
func Today() time.Time {
	return StartOfDay(clock())
}

// Date creates a day at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay drops the time of day and the location of t, keeping its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// IsSameDay checks whether two times fall on the same calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	return StartOfDay(t1).Equal(StartOfDay(t2))
}

// DaysBetween returns the whole days from t1 to t2 (negative if t2 is earlier).
func DaysBetween(t1, t2 time.Time) int {
	return int(StartOfDay(t2).Sub(StartOfDay(t1)).Hours() / 24)
}

// ─────────────────────────────────────────────────────────────────────────────
// Parsing
// ─────────────────────────────────────────────────────────────────────────────

// ParseDate parses a day typed by the operator. It accepts dd/mm/yyyy (the
// console format), d/m/yyyy, dd-mm-yyyy and yyyy-mm-dd. The word "hoje"
// means today.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if strings.EqualFold(value, "hoje") {
		return Today(), nil
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (use dd/mm/aaaa)", ErrInvalidDate, value)
}

// ─────────────────────────────────────────────────────────────────────────────
// Formatting
// ─────────────────────────────────────────────────────────────────────────────

// FormatDate formats a day as dd/mm/yyyy. The zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(LayoutBR)
}

// FormatISO formats a day as yyyy-mm-dd.
func FormatISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// FormatLong formats a day in full Portuguese, e.g. "sábado, 4 de maio de 2024".
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", WeekdayName(t.Weekday()), t.Day(), MonthName(t.Month()), t.Year())
}

var weekdays = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// WeekdayName returns the Portuguese weekday name.
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdays[d]
}

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName returns the Portuguese month name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return months[m-1]
}
