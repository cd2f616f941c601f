package utils

import "strings"

// NameCompare orders names the way people read them: case-insensitively, with
// embedded numbers compared by value so that "F10" sorts after "F9".
//
// Empty names are equal to each other and sort before everything else. When
// one name is a prefix of the other, the shorter one sorts first.
func NameCompare(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 0
	}

	// skip common prefix
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	if i >= len(a) {
		return -1
	}
	if i >= len(b) {
		return 1
	}
	for i > 0 && isDigit(a[i-1]) {
		i--
	}

	// compare digit runs as whole numbers
	if isDigit(a[i]) && isDigit(b[i]) {
		if c := compareDigits(digitRun(a[i:]), digitRun(b[i:])); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digitRun(s string) string {
	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	return s[:end]
}

// compareDigits compares two decimal digit strings by numeric value without
// converting them, so arbitrarily long runs cannot overflow.
func compareDigits(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}
