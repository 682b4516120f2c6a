package loaderwithmetrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/composio/docsite/pkg/dataloader"
)

var loadMetric = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "docsite_data_load_millis",
	Help:    "Milliseconds to load a site data document",
	Buckets: []float64{5, 25, 100, 250, 1000, 5000, 30000, 120000},
}, []string{"loader"})

var errorMetric = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "docsite_data_load_errors",
	Help:    "Errors encountered while loading a site data document",
	Buckets: []float64{0, 1, 5},
}, []string{"loader"})

// LoaderWithMetrics runs its wrapped loaders concurrently and records how
// long each took and how many errors it reported.
type LoaderWithMetrics struct {
	loaders    []dataloader.DataLoader
	promPusher *push.Pusher
}

var _ dataloader.DataLoader = &LoaderWithMetrics{}

func New(wrappedLoaders []dataloader.DataLoader) *LoaderWithMetrics {
	loader := &LoaderWithMetrics{
		loaders: wrappedLoaders,
	}

	if pushgateway := os.Getenv("DOCSITE_PROMETHEUS_PUSHGATEWAY"); pushgateway != "" {
		loader.promPusher = push.New(pushgateway, "docsite-data-loader")
		loader.promPusher.Collector(errorMetric)
		loader.promPusher.Collector(loadMetric)
	}

	return loader
}

func (l *LoaderWithMetrics) Name() string {
	return "loader-with-metrics"
}

// Load starts every wrapped loader before waiting on any of them. A failing
// loader never cancels the others.
func (l *LoaderWithMetrics) Load(ctx context.Context) {
	overallStart := time.Now()
	log.Infof("starting %d loaders...", len(l.loaders))

	var g errgroup.Group
	for _, loader := range l.loaders {
		loader := loader
		g.Go(func() error {
			start := time.Now()
			loader.Load(ctx)
			totalTime := time.Since(start)
			log.WithFields(log.Fields{
				"loader":   loader.Name(),
				"duration": totalTime,
				"errors":   len(loader.Errors()),
			}).Info("loader complete")

			loadMetric.WithLabelValues(loader.Name()).Observe(float64(totalTime.Milliseconds()))
			errorMetric.WithLabelValues(loader.Name()).Observe(float64(len(loader.Errors())))
			return nil
		})
	}
	_ = g.Wait()

	overallDuration := time.Since(overallStart)
	log.Infof("%d loaders finished in %+v", len(l.loaders), overallDuration)
	loadMetric.WithLabelValues("total").Observe(float64(overallDuration.Milliseconds()))

	if l.promPusher != nil {
		if err := l.promPusher.AddContext(ctx); err != nil {
			log.WithError(err).Error("could not push to prometheus pushgateway")
		} else {
			log.Info("successfully pushed metrics to prometheus gateway")
		}
	}
}

func (l *LoaderWithMetrics) Errors() []error {
	var errs []error
	for _, loader := range l.loaders {
		for _, err := range loader.Errors() {
			errs = append(errs, errors.Wrap(err, fmt.Sprintf("loader %q returned error", loader.Name())))
		}
	}
	return errs
}
