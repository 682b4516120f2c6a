package docsserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/composio/docsite/pkg/accessrequest"
	"github.com/composio/docsite/pkg/api"
	"github.com/composio/docsite/pkg/changelog"
	"github.com/composio/docsite/pkg/html/accesshtml"
	"github.com/composio/docsite/pkg/html/changeloghtml"
	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/html/homehtml"
	"github.com/composio/docsite/pkg/html/loadtesthtml"
	"github.com/composio/docsite/pkg/loadtests"
	"github.com/composio/docsite/pkg/pages"
	"github.com/composio/docsite/pkg/reference"
	"github.com/composio/docsite/pkg/util/param"
)

func changelogFilter(req *http.Request) changelog.Filter {
	return changelog.ParseFilter(param.SafeRead(req, "filter"))
}

func typeFilter(req *http.Request) loadtests.TypeFilter {
	return loadtests.ParseTypeFilter(param.SafeRead(req, "type"))
}

func (s *Server) loadTestView(req *http.Request) loadtesthtml.View {
	tab := param.SafeRead(req, "tab")
	if tab == "" {
		tab = loadtests.TabSummary
	}
	return loadtesthtml.View{
		Filter:    typeFilter(req),
		DateRange: loadtests.ParseDateRange(param.SafeRead(req, "startDate"), param.SafeRead(req, "endDate"), s.now()),
		Tab:       tab,
	}
}

func writeFragment(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	fmt.Fprint(w, markup)
}

// printPage dispatches to exactly one page renderer based on the path.
func (s *Server) printPage(w http.ResponseWriter, req *http.Request) {
	snapshot := s.store.Current()

	switch pages.Classify(req.URL.Path) {
	case pages.Changelog:
		changeloghtml.PrintChangelogHTMLReport(w, req, snapshot.Changelog, changelogFilter(req), snapshot.LoadedAt)
	case pages.LoadTests:
		loadtesthtml.PrintLoadTestsHTMLReport(w, req, snapshot.LoadTests, s.loadTestView(req), snapshot.LoadedAt)
	case pages.AccessRequest:
		accesshtml.PrintAccessRequestHTMLReport(w, req, snapshot.LoadedAt)
	default:
		homehtml.PrintHomeHTMLReport(w, req, snapshot, reference.Default())
	}
}

func (s *Server) changelogTimeline(w http.ResponseWriter, req *http.Request) {
	writeFragment(w, changeloghtml.TimelineHTML(s.store.Current().Changelog, changelogFilter(req)))
}

func (s *Server) loadTestMetrics(w http.ResponseWriter, req *http.Request) {
	m, ok := loadtests.ComputeMetrics(loadtests.Apply(s.store.Current().LoadTests, typeFilter(req)))
	if !ok {
		// Leave whatever the cards currently show.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeFragment(w, loadtesthtml.MetricsHTML(m, ok))
}

func (s *Server) loadTestResults(w http.ResponseWriter, req *http.Request) {
	view := s.loadTestView(req)
	w.Header().Set("X-Start-Date", view.DateRange.StartString())
	w.Header().Set("X-End-Date", view.DateRange.EndString())
	writeFragment(w, loadtesthtml.ResultsRowsHTML(loadtests.Apply(s.store.Current().LoadTests, view.Filter)))
}

func (s *Server) loadTestDetails(w http.ResponseWriter, req *http.Request) {
	result, ok := loadtests.Find(s.store.Current().LoadTests, mux.Vars(req)["id"])
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeFragment(w, loadtesthtml.DetailModal(result))
}

func (s *Server) quickFix(w http.ResponseWriter, req *http.Request) {
	fix, ok := reference.Default().QuickFix(mux.Vars(req)["category"])
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeFragment(w, homehtml.QuickFixModal(fix))
}

func (s *Server) serviceInfo(w http.ResponseWriter, req *http.Request) {
	svc, ok := reference.Default().Service(mux.Vars(req)["name"])
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeFragment(w, homehtml.ServiceModal(svc))
}

func (s *Server) jsonChangelog(w http.ResponseWriter, req *http.Request) {
	api.PrintChangelogJSON(w, s.store.Current().Changelog, changelogFilter(req))
}

func (s *Server) jsonLoadTests(w http.ResponseWriter, req *http.Request) {
	view := s.loadTestView(req)
	api.PrintLoadTestsJSON(w, s.store.Current().LoadTests, view.Filter, view.DateRange)
}

func (s *Server) jsonLoadTestMetrics(w http.ResponseWriter, req *http.Request) {
	api.PrintLoadTestMetricsJSON(w, s.store.Current().LoadTests, typeFilter(req))
}

func (s *Server) submitAccessRequest(w http.ResponseWriter, req *http.Request) {
	// Submission always succeeds; unreadable input is logged and skipped.
	if err := req.ParseForm(); err != nil {
		log.WithError(err).Warning("couldn't parse access request form")
	}

	ar, err := accessrequest.Decode(req.PostForm)
	if err != nil {
		log.WithError(err).Warning("access request had undecodable fields")
	}

	message := accessrequest.Submit(ar)
	accesshtml.PrintAccessRequestHTMLReport(w, req, s.store.Current().LoadedAt, generichtml.Notification{
		Kind:    generichtml.NotificationSuccess,
		Message: message,
	})
}
