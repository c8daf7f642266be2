package utils

import (
	"fmt"
	"strings"
	"time"
)

// indoMonths maps Indonesian month names to English so the stdlib time
// parser can handle spreadsheet period cells.
var indoMonths = map[string]string{
	"Januari": "January", "Februari": "February", "Maret": "March",
	"April": "April", "Mei": "May", "Juni": "June",
	"Juli": "July", "Agustus": "August", "September": "September",
	"Oktober": "October", "November": "November", "Desember": "December",
}

// ParsePeriode converts a lease period cell ("Maret 2026" or "1 Maret 2026",
// Indonesian month names) into canonical year-month form "2006-01".
func ParsePeriode(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty period")
	}
	for indo, eng := range indoMonths {
		value = strings.ReplaceAll(value, indo, eng)
	}

	if t, err := time.Parse("2 January 2006", value); err == nil {
		return t.Format("2006-01"), nil
	}
	if t, err := time.Parse("January 2006", value); err == nil {
		return t.Format("2006-01"), nil
	}
	return "", fmt.Errorf("unrecognized period: %q", value)
}

// PeriodeEndsWithin reports whether a year-month lease end ("2006-01")
// falls within windowDays from now. Periods already in the past count as
// within the window.
func PeriodeEndsWithin(periode string, now time.Time, windowDays int) (bool, error) {
	end, err := time.Parse("2006-01-02", periode+"-01")
	if err != nil {
		return false, err
	}
	return end.Sub(now) <= time.Duration(windowDays)*24*time.Hour, nil
}
