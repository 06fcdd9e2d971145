package sanitize_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/bucketfs/sanitize"
	"github.com/rise-and-shine/bucketfs/vpath"
)

func TestName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain name kept", raw: "report.pdf", expected: "report.pdf"},
		{name: "inner dots collapsed", raw: "a..b..c.txt", expected: "abc.txt"},
		{name: "whitespace only", raw: "   ", expected: "unnamed"},
		{name: "empty", raw: "", expected: "unnamed"},
		{name: "turkish capital dotted i", raw: "İstanbul Raporu.pdf", expected: "IstanbulRaporu.pdf"},
		{name: "turkish lowercase letters", raw: "çğıöşü.txt", expected: "cgiosu.txt"},
		{name: "turkish uppercase letters", raw: "ÇĞÖŞÜ", expected: "CGOSU"},
		{name: "umlaut a", raw: "Ä Ö", expected: "AO"},
		{name: "tabs and newlines removed", raw: "a\tb\nc.md", expected: "abc.md"},
		{name: "forbidden punctuation dropped", raw: "my file (1)!.png", expected: "myfile1.png"},
		{name: "dash and underscore kept", raw: "my-file_v2.tar.gz", expected: "my-file_v2tar.gz"},
		{name: "trailing dot dropped", raw: "notes.", expected: "notes"},
		{name: "only dots", raw: "...", expected: "unnamed"},
		{name: "dotfile keeps extension", raw: ".env", expected: ".env"},
		{name: "emoji only", raw: "🚀🚀", expected: "unnamed"},
		{name: "slash removed", raw: "a/b.txt", expected: "ab.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitize.Name(tc.raw))
		})
	}
}

func TestName_OutputIsKeySafe(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	inputs := []string{
		"Şirket Bütçesi 2024 (son).xlsx",
		"   ",
		"ğ ğ ğ",
		"?*<>|\"",
		"a b\tc\r\nd",
		"İ.İ.İ",
		"名前.txt",
		"résumé final.doc",
		"..hidden..",
	}

	for _, in := range inputs {
		out := sanitize.Name(in)
		assert.NotEmpty(t, out, "input %q", in)
		assert.Regexp(t, safe, out, "input %q", in)
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected vpath.Prefix
	}{
		{name: "single segment", raw: "Yeni Klasör", expected: "YeniKlasor/"},
		{name: "nested segments", raw: "Belgeler/Özel Dosyalar/", expected: "Belgeler/OzelDosyalar/"},
		{name: "empty segments skipped", raw: "/a//b/", expected: "a/b/"},
		{name: "umlauts", raw: "Ä Ö/", expected: "AO/"},
		{name: "unnamed segment", raw: "docs/!!!/", expected: "docs/unnamed/"},
		{name: "empty path is root", raw: "", expected: vpath.Root},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitize.Path(tc.raw))
		})
	}
}
