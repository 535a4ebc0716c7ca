// Package present turns aggregated tables into display strings, chart
// structures and rendered SVG.
package present

import "fmt"

// FormatNumber scales value by thousands through the units "" and "mil";
// anything still at or above 1000 after that is shown in "milhões", however
// large. A non-empty prefix (currency symbol) is prepended with a space.
//
//	FormatNumber(500, "")           == "500.00 "
//	FormatNumber(1500, "R$")        == "R$ 1.50 mil"
//	FormatNumber(2_500_000_000, "") == "2500.00 milhões"
func FormatNumber(value float64, prefix string) string {
	for _, unit := range []string{"", "mil"} {
		if value < 1000 {
			return withPrefix(prefix, fmt.Sprintf("%.2f %s", value, unit))
		}
		value /= 1000
	}
	return withPrefix(prefix, fmt.Sprintf("%.2f milhões", value))
}

func withPrefix(prefix, s string) string {
	if prefix == "" {
		return s
	}
	return prefix + " " + s
}
