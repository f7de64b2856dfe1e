package incomfort

import (
	"strconv"
	"strings"
)

// FormatValue renders a decoded reading the way the gateway tools always
// have: shortest form, with a trailing ".0" on whole numbers (21 -> "21.0").
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// FormatBool renders a flag as "0" or "1".
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
