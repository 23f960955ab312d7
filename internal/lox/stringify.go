package lox

import "strconv"

// formatNumber renders a Lox number as its shortest decimal representation,
// with no trailing ".0" for integral values (so `3.0` prints as `3`).
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if i, err := strconv.ParseFloat(s, 64); err == nil && i == float64(int64(i)) {
		return strconv.FormatInt(int64(i), 10)
	}
	return s
}

// Stringify renders any runtime Object the way the `print` statement does.
// Every Object's own String() already implements this rule; Stringify
// exists as the single named entry point the Print statement and the REPL
// echo both call through.
func Stringify(obj Object) string {
	return obj.String()
}
