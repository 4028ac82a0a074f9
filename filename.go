package viewerpdf

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Sanitize turns a document title into a file name stem. Every character
// other than an ASCII letter or digit becomes an underscore and the result
// is lowercased. Characters outside the Basic Multilingual Plane count as
// two, so "a😀" becomes "a__", as it does in the viewer's own scripts.
func Sanitize(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			n := utf16.RuneLen(r)
			if n < 1 {
				n = 1
			}
			b.WriteString(strings.Repeat("_", n))
		}
	}
	return b.String()
}

// FileName derives the output file name for a PDF profile. An empty title
// falls back to the profile's default name.
func FileName(title string, p Profile) string {
	if title == "" {
		return p.DefaultName
	}
	return Sanitize(title) + p.Suffix
}

// ImageFileName returns the name of the n-th (1-based) extracted page.
func ImageFileName(n int, f Format) string {
	return "page-" + strconv.Itoa(n) + f.ext()
}
