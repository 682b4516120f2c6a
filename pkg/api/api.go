package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/changelog"
	"github.com/composio/docsite/pkg/loadtests"
)

// RespondWithJSON writes data as indented JSON with the given status code.
func RespondWithJSON(statusCode int, w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(data); err != nil {
		log.WithError(err).Error("unable to render json")
	}
}

type ChangelogResponse struct {
	Loaded  bool                    `json:"loaded"`
	Filter  changelog.Filter        `json:"filter"`
	Count   int                     `json:"count"`
	Entries []docsv1.ChangelogEntry `json:"entries"`
}

// PrintChangelogJSON writes the filtered, sorted changelog.
func PrintChangelogJSON(w http.ResponseWriter, doc *docsv1.ChangelogDocument, filter changelog.Filter) {
	entries := changelog.Apply(doc, filter)
	if entries == nil {
		entries = []docsv1.ChangelogEntry{}
	}
	RespondWithJSON(http.StatusOK, w, ChangelogResponse{
		Loaded:  doc != nil,
		Filter:  filter,
		Count:   len(entries),
		Entries: entries,
	})
}

type LoadTestsResponse struct {
	Loaded    bool                    `json:"loaded"`
	Type      loadtests.TypeFilter    `json:"type"`
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Count     int                     `json:"count"`
	Results   []docsv1.LoadTestResult `json:"results"`
}

// PrintLoadTestsJSON writes the results of one test type, most recent
// first. The date range is echoed but not applied.
func PrintLoadTestsJSON(w http.ResponseWriter, doc *docsv1.LoadTestDocument, filter loadtests.TypeFilter, dateRange loadtests.DateRange) {
	results := loadtests.Apply(doc, filter)
	if results == nil {
		results = []docsv1.LoadTestResult{}
	}
	RespondWithJSON(http.StatusOK, w, LoadTestsResponse{
		Loaded:    doc != nil,
		Type:      filter,
		StartDate: dateRange.StartString(),
		EndDate:   dateRange.EndString(),
		Count:     len(results),
		Results:   results,
	})
}

type MetricsDisplay struct {
	AvgResponseTime string `json:"avgResponseTime"`
	ConcurrentUsers string `json:"concurrentUsers"`
	Throughput      string `json:"throughput"`
	ErrorRate       string `json:"errorRate"`
}

type LoadTestMetricsResponse struct {
	Type    loadtests.TypeFilter `json:"type"`
	Metrics loadtests.Metrics    `json:"metrics"`
	Display MetricsDisplay       `json:"display"`
}

// PrintLoadTestMetricsJSON writes the aggregates for one test type, or 204
// when no run matches.
func PrintLoadTestMetricsJSON(w http.ResponseWriter, doc *docsv1.LoadTestDocument, filter loadtests.TypeFilter) {
	m, ok := loadtests.ComputeMetrics(loadtests.Apply(doc, filter))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	RespondWithJSON(http.StatusOK, w, LoadTestMetricsResponse{
		Type:    filter,
		Metrics: m,
		Display: MetricsDisplay{
			AvgResponseTime: m.AvgResponseTimeDisplay(),
			ConcurrentUsers: m.ConcurrentUsersDisplay(),
			Throughput:      m.ThroughputDisplay(),
			ErrorRate:       m.ErrorRateDisplay(),
		},
	})
}
