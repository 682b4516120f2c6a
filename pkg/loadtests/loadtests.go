package loadtests

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"k8s.io/apimachinery/pkg/util/sets"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
)

// TypeAll selects every test regardless of type.
const TypeAll = "all"

// TypeFilter is either TypeAll or one test type as it appears in the data.
type TypeFilter string

func ParseTypeFilter(s string) TypeFilter {
	if s == "" {
		return TypeAll
	}
	return TypeFilter(s)
}

func (t TypeFilter) Matches(result docsv1.LoadTestResult) bool {
	return t == TypeAll || string(t) == result.Type
}

// Types returns the distinct test types present in the document, sorted.
func Types(doc *docsv1.LoadTestDocument) []string {
	if doc == nil {
		return nil
	}
	types := sets.New[string]()
	for _, r := range doc.LoadTests {
		if r.Type != "" {
			types.Insert(r.Type)
		}
	}
	return sets.List(types)
}

// Apply returns the results of the selected type, most recent run first.
func Apply(doc *docsv1.LoadTestDocument, filter TypeFilter) []docsv1.LoadTestResult {
	if doc == nil {
		return nil
	}
	results := make([]docsv1.LoadTestResult, 0, len(doc.LoadTests))
	for _, r := range doc.LoadTests {
		if filter.Matches(r) {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RanAt().After(results[j].RanAt())
	})
	return results
}

// Find looks a result up by id.
func Find(doc *docsv1.LoadTestDocument, id string) (docsv1.LoadTestResult, bool) {
	if doc == nil {
		return docsv1.LoadTestResult{}, false
	}
	for _, r := range doc.LoadTests {
		if r.ID == id {
			return r, true
		}
	}
	return docsv1.LoadTestResult{}, false
}

// DateRange is the window shown in the date inputs. It is carried through
// requests but never used to select results.
type DateRange struct {
	Start time.Time
	End   time.Time
}

const defaultRangeDays = 30

func DefaultDateRange(now time.Time) DateRange {
	return DateRange{Start: now.Add(-defaultRangeDays * 24 * time.Hour), End: now}
}

// ParseDateRange reads YYYY-MM-DD bounds, keeping the default for any bound
// that is empty or malformed.
func ParseDateRange(start, end string, now time.Time) DateRange {
	r := DefaultDateRange(now)
	if t, err := time.Parse(docsv1.DateLayout, start); err == nil {
		r.Start = t
	}
	if t, err := time.Parse(docsv1.DateLayout, end); err == nil {
		r.End = t
	}
	return r
}

func (r DateRange) StartString() string { return r.Start.Format(docsv1.DateLayout) }
func (r DateRange) EndString() string   { return r.End.Format(docsv1.DateLayout) }

// Metrics are the aggregates shown in the four summary cards.
type Metrics struct {
	Count               int     `json:"count" yaml:"count"`
	AvgResponseTimeMs   int     `json:"avgResponseTimeMs" yaml:"avgResponseTimeMs"`
	PeakConcurrentUsers int     `json:"peakConcurrentUsers" yaml:"peakConcurrentUsers"`
	AvgThroughput       int     `json:"avgThroughput" yaml:"avgThroughput"`
	AvgErrorRate        float64 `json:"avgErrorRate" yaml:"avgErrorRate"`
}

// ComputeMetrics aggregates tests. It returns false for an empty set, in
// which case the summary cards keep whatever they showed before.
func ComputeMetrics(tests []docsv1.LoadTestResult) (Metrics, bool) {
	if len(tests) == 0 {
		return Metrics{}, false
	}

	var responseTimes, users, throughput, errorRates stats.Float64Data
	for _, t := range tests {
		responseTimes = append(responseTimes, float64(t.AvgResponseTime))
		users = append(users, float64(t.ConcurrentUsers))
		throughput = append(throughput, t.Throughput)
		errorRates = append(errorRates, t.ErrorRate)
	}

	// Errors are only returned for empty input, which was ruled out above.
	avgResponse, _ := responseTimes.Mean()
	peakUsers, _ := users.Max()
	avgThroughput, _ := throughput.Mean()
	avgErrorRate, _ := errorRates.Mean()
	roundedResponse, _ := stats.Round(avgResponse, 0)
	roundedThroughput, _ := stats.Round(avgThroughput, 0)

	return Metrics{
		Count:               len(tests),
		AvgResponseTimeMs:   int(roundedResponse),
		PeakConcurrentUsers: int(peakUsers),
		AvgThroughput:       int(roundedThroughput),
		AvgErrorRate:        avgErrorRate,
	}, true
}

var printer = message.NewPrinter(language.English)

func (m Metrics) AvgResponseTimeDisplay() string {
	return strconv.Itoa(m.AvgResponseTimeMs) + "ms"
}

func (m Metrics) ConcurrentUsersDisplay() string {
	return strconv.Itoa(m.PeakConcurrentUsers)
}

func (m Metrics) ThroughputDisplay() string {
	return printer.Sprintf("%v req/s", number.Decimal(m.AvgThroughput))
}

func (m Metrics) ErrorRateDisplay() string {
	return fmt.Sprintf("%.1f%%", m.AvgErrorRate)
}

// FormatThroughput groups thousands and keeps up to three fraction digits.
func FormatThroughput(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatErrorRate prints a per-run error rate without padding.
func FormatErrorRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ErrorSeverity classifies an error rate given in percent.
func ErrorSeverity(rate float64) Severity {
	switch {
	case rate > 1:
		return SeverityHigh
	case rate > 0.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
