// Package timefmt normalizes user-supplied instants into the canonical
// textual form stored on activity rows: UTC, second precision, no offset.
package timefmt

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Canonical is the stored form of an instant: `YYYY-MM-DD HH:mm:ss` in UTC.
const Canonical = "2006-01-02 15:04:05"

// layouts are tried in order. Offset-less layouts are interpreted as UTC.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	Canonical,
	"2006-01-02",
}

// Parse interprets s as an absolute instant. Layouts without an offset are
// taken as UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty instant")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized instant %q", s)
}

// Normalize parses s and renders it in the Canonical form.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(Canonical), nil
}
