package docsserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composio/docsite/pkg/accessrequest"
	"github.com/composio/docsite/pkg/api"
	"github.com/composio/docsite/pkg/dataloader/docloader"
	"github.com/composio/docsite/pkg/html/htmltesthelpers"
	"github.com/composio/docsite/pkg/sitedata"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := sitedata.NewStaticStore(sitedata.Snapshot{
		Changelog: htmltesthelpers.GetChangelogDocument(),
		LoadTests: htmltesthelpers.GetLoadTestDocument(),
		LoadedAt:  testNow,
	})
	static := fstest.MapFS{"site.css": &fstest.MapFile{Data: []byte("body{}")}}
	s := NewServer(":0", store, static, prometheus.NewRegistry())
	s.now = func() time.Time { return testNow }
	return s
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, s, httptest.NewRequest(http.MethodGet, target, nil))
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	return htmltesthelpers.Parse(t, rec.Body.String())
}

func TestPrintPage(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		selector string
	}{
		{name: "root is home", path: "/", selector: "section#quickstart"},
		{name: "index page is home", path: "/index.html", selector: "section#quickstart"},
		{name: "changelog", path: "/changelog", selector: ".changelog-timeline"},
		{name: "changelog with html suffix", path: "/docs/changelog.html", selector: ".changelog-timeline"},
		{name: "load tests", path: "/load-tests", selector: "#testResultsTableBody"},
		{name: "access request", path: "/access-request", selector: "form#accessRequestForm"},
		{name: "unknown page renders home", path: "/pricing", selector: "section#quickstart"},
	}

	s := newTestServer(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, s, tc.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, 1, parse(t, rec).Find(tc.selector).Length(), "expected %s on %s", tc.selector, tc.path)
		})
	}
}

func TestChangelogPageFilter(t *testing.T) {
	s := newTestServer(t)

	doc := parse(t, get(t, s, "/changelog?filter=breaking"))
	assert.Equal(t, "breaking", doc.Find(".changelog-timeline").AttrOr("data-filter", ""))
	assert.Equal(t, 2, doc.Find(".changelog-entry").Length())

	doc = parse(t, get(t, s, "/changelog?filter=bogus"))
	assert.Equal(t, "all", doc.Find(".changelog-timeline").AttrOr("data-filter", ""))
	assert.Equal(t, 4, doc.Find(".changelog-entry").Length())
}

func TestChangelogTimelineFragment(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/changelog/timeline?filter=docker")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, 2, doc.Find(".changelog-entry").Length())
	assert.Equal(t, 0, doc.Find("nav").Length(), "fragments carry no page chrome")
}

func TestLoadTestMetricsFragment(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/load-tests/metrics?type=api")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, "200ms", doc.Find("#avgResponseTime").Text())
	assert.Equal(t, "75", doc.Find("#concurrentUsers").Text())

	rec = get(t, s, "/load-tests/metrics?type=soak")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestLoadTestResultsFragment(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/load-tests/results?type=api&startDate=2024-01-01&endDate=2024-02-01")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-01-01", rec.Header().Get("X-Start-Date"))
	assert.Equal(t, "2024-02-01", rec.Header().Get("X-End-Date"))

	doc := parse(t, rec)
	ids := doc.Find(".view-btn").Map(func(_ int, sel *goquery.Selection) string {
		return sel.AttrOr("data-test-id", "")
	})
	// The date range is echoed but does not narrow the results.
	assert.Equal(t, []string{"lt-003", "lt-001"}, ids)

	rec = get(t, s, "/load-tests/results")
	assert.Equal(t, "2024-02-14", rec.Header().Get("X-Start-Date"))
	assert.Equal(t, "2024-03-15", rec.Header().Get("X-End-Date"))
}

func TestLoadTestDetails(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/load-tests/details/lt-002")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lt-002")
	assert.Equal(t, 1, parse(t, rec).Find(".modal").Length())

	rec = get(t, s, "/load-tests/details/lt-404")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHelpAndServiceModals(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path     string
		code     int
		contains string
	}{
		{path: "/help/common", code: http.StatusOK, contains: "kubectl"},
		{path: "/help/networking", code: http.StatusNoContent},
		{path: "/services/apollo", code: http.StatusOK, contains: "9900"},
		{path: "/services/kafka", code: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := get(t, s, tc.path)
			assert.Equal(t, tc.code, rec.Code)
			if tc.contains != "" {
				assert.Contains(t, rec.Body.String(), tc.contains)
			}
		})
	}
}

func TestJSONEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/changelog?filter=helm")
	require.Equal(t, http.StatusOK, rec.Code)
	var changelogResp api.ChangelogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &changelogResp))
	assert.True(t, changelogResp.Loaded)
	assert.Equal(t, 2, changelogResp.Count)

	rec = get(t, s, "/api/load-tests?type=stress")
	require.Equal(t, http.StatusOK, rec.Code)
	var loadTestsResp api.LoadTestsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loadTestsResp))
	assert.Equal(t, 1, loadTestsResp.Count)
	assert.Equal(t, "2024-02-14", loadTestsResp.StartDate)

	rec = get(t, s, "/api/load-tests/metrics?type=stress")
	require.Equal(t, http.StatusOK, rec.Code)
	var metricsResp api.LoadTestMetricsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metricsResp))
	assert.Equal(t, 1, metricsResp.Metrics.Count)
	assert.Equal(t, 200, metricsResp.Metrics.PeakConcurrentUsers)

	rec = get(t, s, "/api/load-tests/metrics?type=soak")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSubmitAccessRequest(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{
			name: "complete request",
			values: url.Values{
				"name":        {"Ada"},
				"email":       {"ada@example.com"},
				"company":     {"Analytical Engines"},
				"accessTypes": {"helm", "docker"},
				"agreements":  {"terms", "security"},
			},
		},
		{
			name:   "empty request still succeeds",
			values: url.Values{},
		},
		{
			name: "undecodable bracketed keys still succeed",
			values: url.Values{
				"name":               {"Ada"},
				"accessTypes[20000]": {"helm"},
				"accessTypes[x]":     {"helm"},
			},
		},
	}

	s := newTestServer(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/access-request", strings.NewReader(tc.values.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := serve(t, s, req)

			require.Equal(t, http.StatusOK, rec.Code)
			doc := parse(t, rec)
			assert.Equal(t, accessrequest.SuccessMessage, doc.Find(".notification.success span").Text())
			assert.Equal(t, 1, doc.Find("form#accessRequestForm").Length())
		})
	}
}

func TestHealthzAndRefresh(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "changelog loaded: true")

	rec = serve(t, s, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refreshed\n", rec.Body.String())
}

type memoryCache map[string][]byte

func (c memoryCache) Get(key string) ([]byte, error) {
	if b, ok := c[key]; ok {
		return b, nil
	}
	return nil, os.ErrNotExist
}

func (c memoryCache) Set(key string, content []byte, _ time.Duration) error {
	c[key] = content
	return nil
}

func TestRefreshForceParam(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "data"), 0o755))
	writeDataFiles(t, root,
		`{"changelog":[{"date":"2024-01-15","type":"helm","title":"From disk"}]}`,
		`{"loadTests":[]}`)

	c := memoryCache{
		docloader.ChangelogPath: []byte(`{"changelog":[{"date":"2024-01-01","type":"docker","title":"a"},{"date":"2024-01-02","type":"docker","title":"b"}]}`),
		docloader.LoadTestsPath: []byte(`{"loadTests":[]}`),
	}
	store := sitedata.NewStore(docloader.NewFileSource(root), c, 0)
	s := NewServer(":0", store, nil, prometheus.NewRegistry())

	rec := get(t, s, "/refresh?force=false")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, store.Current().Changelog.Changelog, 2)

	rec = serve(t, s, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, store.Current().Changelog.Changelog, 1)
	assert.Equal(t, "From disk", store.Current().Changelog.Changelog[0].Title)
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/static/site.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/healthz")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec = serve(t, s, req)
	assert.Equal(t, "abc", rec.Header().Get(requestIDHeader))
}

func TestHandlerCompresses(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestHTTPMetricsRecorded(t *testing.T) {
	registry := prometheus.NewRegistry()
	store := sitedata.NewStaticStore(sitedata.Snapshot{LoadTests: htmltesthelpers.GetLoadTestDocument()})
	s := NewServer(":0", store, nil, registry)

	get(t, s, "/load-tests/details/lt-001")
	get(t, s, "/load-tests/details/lt-002")

	families, err := registry.Gather()
	require.NoError(t, err)
	var handlers []string
	for _, mf := range families {
		if mf.GetName() != "http_requests_inflight" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "handler" {
					handlers = append(handlers, l.GetValue())
				}
			}
		}
	}
	assert.Equal(t, []string{"/load-tests/details/{id}"}, handlers)
}

func TestRefreshMetrics(t *testing.T) {
	newTestServer(t)

	assert.Equal(t, float64(3), testutil.ToFloat64(loadTestRunsMetric.WithLabelValues("all")))
	assert.Equal(t, float64(2), testutil.ToFloat64(loadTestRunsMetric.WithLabelValues("api")))
	assert.Equal(t, float64(200), testutil.ToFloat64(loadTestAvgResponseMetric.WithLabelValues("api")))
	assert.Equal(t, float64(2), testutil.ToFloat64(changelogEntriesMetric.WithLabelValues("breaking")))
	assert.Equal(t, float64(1), testutil.ToFloat64(documentLoadedMetric.WithLabelValues("changelog")))

	refreshMetrics(sitedata.Snapshot{})
	assert.Equal(t, float64(0), testutil.ToFloat64(documentLoadedMetric.WithLabelValues("load-tests")))
	assert.Equal(t, 0, testutil.CollectAndCount(loadTestRunsMetric))
}

type stubProcess struct {
	stopped chan struct{}
}

func (p *stubProcess) Run(ctx context.Context) {
	<-ctx.Done()
	close(p.stopped)
}

func TestDaemonServerStopsProcesses(t *testing.T) {
	p := &stubProcess{stopped: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewDaemonServer(p).Serve(ctx)

	select {
	case <-p.stopped:
	default:
		t.Fatal("process was not stopped")
	}
}

func TestIntervalRefresherDisabled(t *testing.T) {
	s := newTestServer(t)
	done := make(chan struct{})
	go func() {
		IntervalRefresher{Server: s}.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher with no interval should return immediately")
	}
}

func writeDataFiles(t *testing.T, root, changelogJSON, loadTestsJSON string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "changelog.json"), []byte(changelogJSON), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "load-tests.json"), []byte(loadTestsJSON), 0o600))
}

func TestDataWatcherReloadsOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "data"), 0o755))
	writeDataFiles(t, root, `{"changelog":[]}`, `{"loadTests":[]}`)

	store := sitedata.NewStore(docloader.NewFileSource(root), nil, 0)
	s := NewServer(":0", store, nil, prometheus.NewRegistry())
	require.Empty(t, store.Load(context.Background(), false))

	w, err := NewDataWatcher(s, root)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeDataFiles(t, root,
		`{"changelog":[{"date":"2024-01-15","type":"helm","title":"Release"}]}`,
		`{"loadTests":[]}`)

	assert.Eventually(t, func() bool {
		doc := store.Current().Changelog
		return doc != nil && len(doc.Changelog) == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDataWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "data"), 0o755))

	w, err := NewDataWatcher(newTestServer(t), root)
	require.NoError(t, err)
	defer w.watcher.Close()

	dataFile := filepath.Join(root, "data", "changelog.json")
	assert.True(t, w.relevant(fsnotifyEvent(dataFile, true)))
	assert.False(t, w.relevant(fsnotifyEvent(dataFile+".swp", true)))
	assert.False(t, w.relevant(fsnotifyEvent(dataFile, false)))
}

func fsnotifyEvent(name string, write bool) fsnotify.Event {
	op := fsnotify.Chmod
	if write {
		op = fsnotify.Write
	}
	return fsnotify.Event{Name: name, Op: op}
}
