package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"plain number", "1500000", ptr("1500000")},
		{"rupiah prefix with dots", "Rp 1.500.000", ptr("1500000")},
		{"rupiah prefix no space", "Rp1.500.000", ptr("1500000")},
		{"comma decimal separator", "Rp 1.500.000,50", ptr("1500000.5")},
		{"stray dash", "Rp 1.500.000,-", ptr("1500000")},
		{"free text passes through", "sesuai kontrak", ptr("sesuai kontrak")},
		{"unparseable numeric-ish", "1.2.3,4,5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanCurrency(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  string
	}{
		{"nil", nil, ""},
		{"empty", ptr(""), ""},
		{"non-numeric", ptr("sesuai kontrak"), ""},
		{"small", ptr("500"), "Rp. 500"},
		{"thousands", ptr("1500"), "Rp. 1.500"},
		{"millions", ptr("1500000"), "Rp. 1.500.000"},
		{"billions", ptr("2147000000"), "Rp. 2.147.000.000"},
		{"negative", ptr("-5000"), "Rp. -5.000"},
		{"decimal rounds to whole", ptr("1500000.25"), "Rp. 1.500.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRupiah(tt.input))
		})
	}
}

func ptr(s string) *string { return &s }
