package homehtml_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composio/docsite/pkg/html/homehtml"
	"github.com/composio/docsite/pkg/html/htmltesthelpers"
	"github.com/composio/docsite/pkg/reference"
	"github.com/composio/docsite/pkg/sitedata"
)

func TestPrintHomeHTMLReport(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	snapshot := sitedata.Snapshot{
		Changelog: htmltesthelpers.GetChangelogDocument(),
		LoadTests: htmltesthelpers.GetLoadTestDocument(),
		LoadedAt:  time.Now(),
	}

	page := htmltesthelpers.RecordDocument(t, func(r *httptest.ResponseRecorder) {
		homehtml.PrintHomeHTMLReport(r, req, snapshot, reference.Default())
	})

	assert.Equal(t, "#quickstart", page.Find(".nav-menu .nav-link.active").AttrOr("href", ""))
	assert.Equal(t, 1, page.Find("section#quickstart").Length())
	assert.Equal(t, page.Find("section#quickstart code").Length(), page.Find("section#quickstart .copy-btn").Length())
	assert.Equal(t, 3, page.Find(".quick-fix-btn").Length())
	assert.Equal(t, len(reference.Default().Services), page.Find(".service-card").Length())
	assert.Equal(t, "Images for release 2024.03", page.Find(".latest-card .latest-title").First().Text())
	assert.Equal(t, "FAILED", page.Find(".latest-card .status-badge").Text())
	assert.Equal(t, 1, page.Find(`.latest-card a[href="/changelog"]`).Length())
	assert.Equal(t, "/load-tests?type=stress", page.Find(".latest-card .latest-link").AttrOr("href", ""))
}

func TestPrintHomeHTMLReportWithoutData(t *testing.T) {
	req := httptest.NewRequest("GET", "/somewhere-else", nil)

	page := htmltesthelpers.RecordDocument(t, func(r *httptest.ResponseRecorder) {
		homehtml.PrintHomeHTMLReport(r, req, sitedata.Snapshot{}, reference.Default())
	})

	assert.Equal(t, 0, page.Find(".latest-card").Length())
	assert.Equal(t, 1, page.Find("section#quickstart").Length())
	assert.Equal(t, 0, page.Find(".nav-menu .nav-link.active").Length())
}

func TestQuickFixModal(t *testing.T) {
	fix, ok := reference.Default().QuickFix("gke")
	require.True(t, ok)

	page := htmltesthelpers.Parse(t, homehtml.QuickFixModal(fix))
	assert.Equal(t, "GKE Specific Issues", page.Find(".modal-header h3").Text())
	assert.Equal(t, 4, page.Find(".quick-fix-content ol li").Length())
	assert.Equal(t, "gcloud compute firewall-rules list", page.Find(`.copy-btn[data-copy^="gcloud compute"]`).AttrOr("data-copy", ""))
}

func TestServiceModal(t *testing.T) {
	svc, ok := reference.Default().Service("mcp")
	require.True(t, ok)

	page := htmltesthelpers.Parse(t, homehtml.ServiceModal(svc))
	assert.Equal(t, "MCP", page.Find(".modal-header h3").Text())
	assert.Equal(t, "3000", page.Find(".service-port code").Text())
}
