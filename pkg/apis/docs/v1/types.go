package v1

import (
	"strings"
	"time"
)

const (
	// DateLayout is the layout of every date field in the data documents.
	DateLayout = "2006-01-02"
	// DisplayDateLayout is how dates are shown to readers.
	DisplayDateLayout = "January 2, 2006"

	ChangelogTypeHelm   = "helm"
	ChangelogTypeDocker = "docker"

	LoadTestStatusPassed  = "passed"
	LoadTestStatusWarning = "warning"
	LoadTestStatusFailed  = "failed"
)

// DockerImage describes one image published alongside a changelog entry
type DockerImage struct {
	Service    string `json:"service"`
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
}

// ChangelogEntry is one dated record of product changes, optionally flagged breaking.
type ChangelogEntry struct {
	Date            string        `json:"date"`
	Type            string        `json:"type"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Changes         []string      `json:"changes"`
	Breaking        bool          `json:"breaking"`
	BreakingChanges []string      `json:"breakingChanges,omitempty"`
	DockerImages    []DockerImage `json:"dockerImages,omitempty"`
}

// ParsedDate returns the entry date, or the zero time if it cannot be parsed.
func (e ChangelogEntry) ParsedDate() time.Time {
	return parseDate(e.Date)
}

// ChangelogDocument is the shape of data/changelog.json
type ChangelogDocument struct {
	Changelog []ChangelogEntry `json:"changelog"`
}

// LoadTestResult is one recorded performance-test run.
type LoadTestResult struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Duration        string  `json:"duration"`
	Type            string  `json:"type"`
	ConcurrentUsers int     `json:"concurrentUsers"`
	AvgResponseTime int     `json:"avgResponseTime"`
	P95ResponseTime int     `json:"p95ResponseTime"`
	P99ResponseTime int     `json:"p99ResponseTime"`
	MaxResponseTime int     `json:"maxResponseTime"`
	Throughput      float64 `json:"throughput"`
	ErrorRate       float64 `json:"errorRate"`
	Status          string  `json:"status"`
	Description     string  `json:"description"`
}

// RanAt combines the date and time fields. A time that cannot be parsed
// falls back to midnight of the date; an unparseable date gives the zero time.
func (r LoadTestResult) RanAt() time.Time {
	day := parseDate(r.Date)
	if day.IsZero() {
		return day
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, strings.TrimSpace(r.Time)); err == nil {
			return day.Add(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second)
		}
	}
	return day
}

// LoadTestDocument is the shape of data/load-tests.json
type LoadTestDocument struct {
	LoadTests []LoadTestResult `json:"loadTests"`
}

// DisplayDate formats a document date for display. Unparseable values are
// returned unchanged.
func DisplayDate(s string) string {
	t := parseDate(s)
	if t.IsZero() {
		return s
	}
	return t.Format(DisplayDateLayout)
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	// Some generators emit full timestamps.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
