package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"month and year", "Maret 2026", "2026-03", false},
		{"day month year", "1 Maret 2026", "2026-03", false},
		{"december", "Desember 2025", "2025-12", false},
		{"english month also accepted", "March 2026", "2026-03", false},
		{"leading whitespace", "  Mei 2027 ", "2027-05", false},
		{"empty", "", "", true},
		{"garbage", "bulan depan", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodeEndsWithin(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		periode string
		want    bool
	}{
		{"already past", "2025-11", true},
		{"current month", "2026-01", true},
		{"inside the window", "2026-03", true},
		{"just beyond the window", "2026-06", false},
		{"far future", "2027-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeriodeEndsWithin(tt.periode, now, 90)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodeEndsWithinRejectsBadInput(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := PeriodeEndsWithin("soon", now, 90)
	assert.Error(t, err)
}
