package utils

import (
	"fmt"
	"strings"
)

// FormatMinor format nominal minor units jadi string "1,234.56".
// Dipakai di pesan notifikasi & export CSV.
func FormatMinor(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := amount / 100
	cents := amount % 100

	// Sisipin koma tiap 3 digit dari belakang
	digits := fmt.Sprintf("%d", whole)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	formatted := fmt.Sprintf("%s.%02d", strings.Join(parts, ","), cents)
	if negative {
		return "-" + formatted
	}
	return formatted
}
