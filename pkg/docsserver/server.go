package docsserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/composio/docsite/pkg/sitedata"
	"github.com/composio/docsite/pkg/util/param"
)

func NewServer(
	listenAddr string,
	store *sitedata.Store,
	static fs.FS,
	metricsRegistry prometheus.Registerer,
) *Server {
	server := &Server{
		listenAddr: listenAddr,
		store:      store,
		static:     static,
		now:        time.Now,
	}
	server.httpMetrics = newHTTPMetrics(metricsRegistry)

	refreshMetrics(store.Current())
	store.OnLoad(refreshMetrics)
	return server
}

type Server struct {
	listenAddr  string
	store       *sitedata.Store
	static      fs.FS
	httpMetrics httpMetricsMiddleware
	httpServer  *http.Server
	now         func() time.Time
}

// RefreshData reloads both documents. A forced refresh bypasses the cache.
func (s *Server) RefreshData(ctx context.Context, force bool) []error {
	log.WithField("force", force).Info("refreshing data")
	errs := s.store.Load(ctx, force)
	log.Info("refresh complete")
	return errs
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger, s.httpMetrics.middleware)

	if s.static != nil {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(s.static))))
	}
	r.HandleFunc("/healthz", s.healthz)
	r.HandleFunc("/refresh", s.refresh).Methods(http.MethodGet, http.MethodPost)

	// Fragments rendered into an already loaded page by the page script.
	r.HandleFunc("/changelog/timeline", s.changelogTimeline).Methods(http.MethodGet)
	r.HandleFunc("/load-tests/metrics", s.loadTestMetrics).Methods(http.MethodGet)
	r.HandleFunc("/load-tests/results", s.loadTestResults).Methods(http.MethodGet)
	r.HandleFunc("/load-tests/details/{id}", s.loadTestDetails).Methods(http.MethodGet)
	r.HandleFunc("/help/{category}", s.quickFix).Methods(http.MethodGet)
	r.HandleFunc("/services/{name}", s.serviceInfo).Methods(http.MethodGet)

	r.HandleFunc("/api/changelog", s.jsonChangelog).Methods(http.MethodGet)
	r.HandleFunc("/api/load-tests", s.jsonLoadTests).Methods(http.MethodGet)
	r.HandleFunc("/api/load-tests/metrics", s.jsonLoadTestMetrics).Methods(http.MethodGet)

	r.HandleFunc("/access-request", s.submitAccessRequest).Methods(http.MethodPost)
	// Every other path is a page, classified by name.
	r.PathPrefix("/").HandlerFunc(s.printPage).Methods(http.MethodGet, http.MethodHead)

	return r
}

func (s *Server) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

// Run serves until ctx is cancelled, then shuts the listener down.
func (s *Server) Run(ctx context.Context) {
	s.httpServer = &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warning("error shutting down http server")
		}
	}()

	log.Infof("Serving docs on %s", s.listenAddr)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Fatal("server exited")
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.store.Current()
	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	fmt.Fprintf(w, "changelog loaded: %t\nload tests loaded: %t\n", snapshot.Changelog != nil, snapshot.LoadTests != nil)
}

// refresh bypasses the cache unless force=false is given.
func (s *Server) refresh(w http.ResponseWriter, req *http.Request) {
	errs := s.RefreshData(req.Context(), param.SafeRead(req, "force") != "false")

	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	if len(errs) > 0 {
		w.WriteHeader(http.StatusBadGateway)
		for _, err := range errs {
			fmt.Fprintln(w, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "refreshed")
}
