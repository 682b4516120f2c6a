package docsserver

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// IntervalRefresher reloads the documents on a fixed interval.
type IntervalRefresher struct {
	Server   *Server
	Interval time.Duration
}

func (r IntervalRefresher) Run(ctx context.Context) {
	if r.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if errs := r.Server.RefreshData(ctx, true); len(errs) > 0 {
				log.WithField("errors", len(errs)).Warning("scheduled refresh had failures")
			}
		}
	}
}
