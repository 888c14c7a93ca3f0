package config

import (
	"strconv"
	"strings"
)

// ParseValues reads integers separated by commas, semicolons or whitespace.
// Each token is read like a leading-digit integer parse: an optional sign
// followed by digits, ignoring anything after them ("12px" is 12). Tokens
// without a leading number are dropped.
func ParseValues(input string) []int {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		if v, ok := leadingInt(f); ok {
			out = append(out, v)
		}
	}
	return out
}

func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatValues is the inverse of ParseValues for display in input boxes.
func FormatValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
