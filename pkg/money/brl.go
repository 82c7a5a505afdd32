package money

import (
	"fmt"
	"strings"
)

// BRL renders a value in Brazilian currency format: R$ 1.234,56
func BRL(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return "R$ " + sign + b.String() + "," + decPart
}
