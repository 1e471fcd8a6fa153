package csvimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a rupiah amount as people type it in spreadsheets.
// Accepted forms: "25000", "25.000", "Rp 25.000,50", "-1.250.000", "25000.5".
//
// A comma is always the decimal separator. Without a comma, dots are
// thousands separators when they group exactly three digits, otherwise the
// single dot is a decimal point.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)

	neg := false
	if strings.HasPrefix(clean, "-") {
		neg = true
		clean = strings.TrimSpace(clean[1:])
	}

	if len(clean) >= 2 && strings.EqualFold(clean[:2], "rp") {
		clean = strings.TrimSpace(strings.TrimLeft(clean[2:], "."))
	}

	clean = strings.ReplaceAll(clean, " ", "")

	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case thousandsGrouped(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unrecognized number %q", s)
	}

	if neg {
		d = d.Neg()
	}

	return d, nil
}

// thousandsGrouped reports whether every dot in s separates a group of
// exactly three digits, as in "1.250.000".
func thousandsGrouped(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || parts[0] == "" || len(parts[0]) > 3 {
		return false
	}

	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}

	return true
}
