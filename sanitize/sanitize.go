// Package sanitize turns user supplied names into object key segments
// that only contain [A-Za-z0-9._-].
package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rise-and-shine/bucketfs/vpath"
)

// Fallback is returned when nothing survives sanitization.
const Fallback = "unnamed"

//nolint:gochecknoglobals // static lookup tables shared by all calls
var (
	transliterator = strings.NewReplacer(
		"ç", "c", "Ç", "C",
		"ğ", "g", "Ğ", "G",
		"ı", "i", "İ", "I",
		"ö", "o", "Ö", "O",
		"ş", "s", "Ş", "S",
		"ü", "u", "Ü", "U",
		"ä", "a", "Ä", "A",
	)

	forbidden = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// Name sanitizes a single name segment. It never fails.
//
// Diacritics are transliterated, whitespace is removed, forbidden characters are
// dropped and all dots but the one in front of the extension are collapsed.
func Name(raw string) string {
	s := transliterator.Replace(raw)

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	s = forbidden.ReplaceAllString(s, "")

	parts := strings.Split(s, ".")
	if len(parts) > 1 {
		ext := parts[len(parts)-1]
		base := strings.Join(parts[:len(parts)-1], "")
		if ext != "" {
			s = base + "." + ext
		} else {
			s = base
		}
	}

	if s == "" {
		return Fallback
	}
	return s
}

// Path sanitizes every non-empty segment of a slash separated folder path
// and returns it as a folder prefix.
func Path(raw string) vpath.Prefix {
	segments := vpath.Segments(raw)
	for i, segment := range segments {
		segments[i] = Name(segment)
	}
	return vpath.NewPrefix(strings.Join(segments, vpath.Separator))
}
