package docsserver

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

// DaemonProcess is a long running piece of the site that stops when its
// context is cancelled.
type DaemonProcess interface {
	Run(ctx context.Context)
}

type DaemonServer struct {
	processes   []DaemonProcess
	gracePeriod time.Duration
}

func NewDaemonServer(processes ...DaemonProcess) *DaemonServer {
	return &DaemonServer{processes: processes, gracePeriod: 10 * time.Second}
}

// Serve runs every process until SIGINT, SIGTERM or cancellation of ctx,
// then waits up to the grace period for them to return.
func (d *DaemonServer) Serve(ctx context.Context) {
	if len(d.processes) == 0 {
		log.Error("empty process list, exiting")
		return
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("processes", len(d.processes)).Info("started serving")
	wg := sync.WaitGroup{}
	for _, p := range d.processes {
		wg.Add(1)
		go func(p DaemonProcess) {
			defer wg.Done()
			p.Run(ctx)
		}(p)
	}

	<-ctx.Done()
	log.WithError(context.Cause(ctx)).Info("shutting down")

	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()

	select {
	case <-done:
		log.Info("all processes stopped")
	case <-time.After(d.gracePeriod):
		log.Warning("timed out waiting for processes to stop")
	}
}
