package repository

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the storage format of shows.start_time.  Values are UTC
// so that string comparison in SQLite and DATETIME comparison in MySQL
// agree.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in TimeLayout after converting it to UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

var scanLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05",
}

// dbTime scans DATETIME columns regardless of whether the driver hands
// back a time.Time (MySQL with parseTime, SQLite with a DATETIME column)
// or the raw text.
type dbTime struct {
	Time time.Time
}

func (d *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v.UTC()
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	return fmt.Errorf("unsupported time value %T", src)
}

func (d *dbTime) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range scanLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable time %q", s)
}

// likePattern builds a case-insensitive substring pattern for
// `LOWER(col) LIKE ? ESCAPE '!'`.  Wildcards typed by the user match
// literally.  Only ASCII letters are folded: SQLite's LOWER leaves other
// characters alone, so "É" matches "É" but not "é" on that driver.
func likePattern(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(asciiLower(term)) + "%"
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
