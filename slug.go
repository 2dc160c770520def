package glubblog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var umlauts = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss")

func delspace(r rune) rune {
	if unicode.In(r, unicode.Latin, unicode.Digit) {
		return r
	}
	return '-'
}

var dashes = regexp.MustCompile(`-{2,}`)

// Slugify turns a title or file name into a URL path segment.
func Slugify(s string) string {
	s = umlauts.Replace(strings.ToLower(strings.TrimSpace(s)))
	s = strings.Map(delspace, s)
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// "2006-01-02_" prefixes written by gctool new
var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_`)

// splitDatePrefix splits "2006-01-02_name" into its date and name parts.
func splitDatePrefix(name string) (string, string) {
	m := datePrefix.FindStringSubmatch(name)
	if m == nil {
		return "", name
	}
	return m[1], name[len(m[0]):]
}

var titleCaser = cases.Title(language.English)

// titleFromName is the fallback title for content without one.
func titleFromName(name string) string {
	_, name = splitDatePrefix(name)
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}
