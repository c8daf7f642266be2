package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CleanCurrency normalizes a spreadsheet currency cell into a canonical
// decimal string. Indonesian formatting uses "Rp" prefixes, dots as
// thousand separators and commas as decimal separators. Cells with no
// digits at all (free text) are passed through unchanged; unparseable
// numeric-looking cells return nil.
func CleanCurrency(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if !strings.ContainsAny(value, "0123456789") {
		return &value
	}

	cleaned := value
	cleaned = strings.ReplaceAll(cleaned, "Rp", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	s := d.String()
	return &s
}

// FormatRupiah renders a stored monetary value as locale-formatted Rupiah
// text ("Rp. 1.500.000"): integer part grouped with dots, no decimals.
// Nil, empty and non-numeric values render as "".
func FormatRupiah(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return ""
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*value))
	if err != nil {
		return ""
	}
	whole := d.Round(0).String()

	neg := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "Rp. " + strings.Join(groups, ".")
	if neg {
		out = "Rp. -" + strings.Join(groups, ".")
	}
	return out
}
