package sitedata

import (
	"github.com/composio/docsite/pkg/changelog"
	"github.com/composio/docsite/pkg/loadtests"
)

// Report summarizes a snapshot for operators.
type Report struct {
	Changelog *ChangelogReport `json:"changelog" yaml:"changelog"`
	LoadTests *LoadTestReport  `json:"loadTests" yaml:"loadTests"`
	Errors    []string         `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type ChangelogReport struct {
	Entries map[string]int `json:"entries" yaml:"entries"`
}

type LoadTestReport struct {
	Runs    int                          `json:"runs" yaml:"runs"`
	Metrics map[string]loadtests.Metrics `json:"metrics" yaml:"metrics"`
}

// Summarize counts changelog entries per filter and aggregates load test
// metrics per test type. A document that is not loaded is left nil.
func Summarize(snapshot Snapshot, errs []error) Report {
	report := Report{}
	for _, err := range errs {
		report.Errors = append(report.Errors, err.Error())
	}

	if snapshot.Changelog != nil {
		report.Changelog = &ChangelogReport{Entries: map[string]int{}}
		for filter, count := range changelog.Counts(snapshot.Changelog) {
			report.Changelog.Entries[string(filter)] = count
		}
	}

	if snapshot.LoadTests != nil {
		report.LoadTests = &LoadTestReport{
			Runs:    len(snapshot.LoadTests.LoadTests),
			Metrics: map[string]loadtests.Metrics{},
		}
		for _, t := range append([]string{loadtests.TypeAll}, loadtests.Types(snapshot.LoadTests)...) {
			if m, ok := loadtests.ComputeMetrics(loadtests.Apply(snapshot.LoadTests, loadtests.TypeFilter(t))); ok {
				report.LoadTests.Metrics[t] = m
			}
		}
	}

	return report
}
