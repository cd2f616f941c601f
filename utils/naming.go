package utils

import "strings"

// CamelCase converts a lower-case hyphenated element name to the camelCase
// key used in JSON documents: "motor-id" becomes "motorId". Only a hyphen
// followed by a lower-case ASCII letter is folded.
func CamelCase(name string) string {
	if strings.IndexByte(name, '-') < 0 {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' && i+1 < len(name) && isLower(name[i+1]) {
			b.WriteByte(name[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Singular derives the per-item element name from a plural list name.
// It is an English heuristic: "-ses" drops two letters, "-ies" becomes "-y",
// anything else loses a trailing "s".
func Singular(listName string) string {
	switch {
	case strings.HasSuffix(listName, "ses"):
		return listName[:len(listName)-2]
	case strings.HasSuffix(listName, "ies"):
		return listName[:len(listName)-3] + "y"
	default:
		return strings.TrimSuffix(listName, "s")
	}
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
