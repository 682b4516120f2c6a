package docsserver

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/composio/docsite/pkg/changelog"
	"github.com/composio/docsite/pkg/loadtests"
	"github.com/composio/docsite/pkg/sitedata"
)

var (
	documentLoadedMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docsite_document_loaded",
		Help: "1 if the named data document is currently loaded, 0 otherwise.",
	}, []string{"document"})
	changelogEntriesMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docsite_changelog_entries",
		Help: "Number of changelog entries matching each filter.",
	}, []string{"filter"})
	loadTestRunsMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docsite_load_test_runs",
		Help: "Number of recorded load test runs per test type.",
	}, []string{"type"})
	loadTestAvgResponseMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docsite_load_test_avg_response_time_ms",
		Help: "Mean of the average response times of the runs of a test type, in milliseconds.",
	}, []string{"type"})
	loadTestPeakUsersMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docsite_load_test_peak_concurrent_users",
		Help: "Highest concurrent user count across the runs of a test type.",
	}, []string{"type"})
	loadTestThroughputMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docsite_load_test_avg_throughput",
		Help: "Mean throughput of the runs of a test type, in requests per second.",
	}, []string{"type"})
	loadTestErrorRateMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docsite_load_test_avg_error_rate",
		Help: "Mean error rate percentage of the runs of a test type.",
	}, []string{"type"})
)

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// refreshMetrics publishes gauges for a newly loaded snapshot. Types that
// disappeared from the data are dropped by the reset.
func refreshMetrics(snapshot sitedata.Snapshot) {
	documentLoadedMetric.WithLabelValues("changelog").Set(boolGauge(snapshot.Changelog != nil))
	documentLoadedMetric.WithLabelValues("load-tests").Set(boolGauge(snapshot.LoadTests != nil))

	changelogEntriesMetric.Reset()
	if snapshot.Changelog != nil {
		for filter, count := range changelog.Counts(snapshot.Changelog) {
			changelogEntriesMetric.WithLabelValues(string(filter)).Set(float64(count))
		}
	}

	for _, g := range []*prometheus.GaugeVec{loadTestRunsMetric, loadTestAvgResponseMetric,
		loadTestPeakUsersMetric, loadTestThroughputMetric, loadTestErrorRateMetric} {
		g.Reset()
	}
	if snapshot.LoadTests == nil {
		return
	}
	types := append([]string{loadtests.TypeAll}, loadtests.Types(snapshot.LoadTests)...)
	for _, t := range types {
		m, ok := loadtests.ComputeMetrics(loadtests.Apply(snapshot.LoadTests, loadtests.TypeFilter(t)))
		if !ok {
			continue
		}
		loadTestRunsMetric.WithLabelValues(t).Set(float64(m.Count))
		loadTestAvgResponseMetric.WithLabelValues(t).Set(float64(m.AvgResponseTimeMs))
		loadTestPeakUsersMetric.WithLabelValues(t).Set(float64(m.PeakConcurrentUsers))
		loadTestThroughputMetric.WithLabelValues(t).Set(float64(m.AvgThroughput))
		loadTestErrorRateMetric.WithLabelValues(t).Set(m.AvgErrorRate)
	}
}

// MetricsServer exposes the default prometheus registry on its own listener.
type MetricsServer struct {
	Addr string
}

func (m MetricsServer) Run(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: m.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil {
			log.WithError(err).Warning("error closing metrics listener")
		}
	}()

	log.Infof("Serving metrics on %s", m.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Error("metrics listener exited")
	}
}
