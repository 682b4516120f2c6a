package accesshtml_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/composio/docsite/pkg/accessrequest"
	"github.com/composio/docsite/pkg/html/accesshtml"
	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/html/htmltesthelpers"
)

func TestFormHTML(t *testing.T) {
	page := htmltesthelpers.Parse(t, accesshtml.FormHTML())

	form := page.Find("form#accessRequestForm")
	assert.Equal(t, "post", form.AttrOr("method", ""))
	assert.Equal(t, len(accessrequest.AccessTypes), form.Find(`input[name="accessTypes"]`).Length())
	assert.Equal(t, len(accessrequest.Agreements), form.Find(`input[name="agreements"]`).Length())
	assert.Equal(t, 0, form.Find("input:checked").Length())
	for _, name := range []string{"name", "email", "company", "role", "environment", "useCase"} {
		assert.Equal(t, 1, form.Find(`[name="`+name+`"]`).Length(), name)
	}
}

func TestPrintAccessRequestHTMLReport(t *testing.T) {
	req := httptest.NewRequest("POST", "/access-request", nil)

	page := htmltesthelpers.RecordDocument(t, func(r *httptest.ResponseRecorder) {
		accesshtml.PrintAccessRequestHTMLReport(r, req, time.Now(), generichtml.Notification{
			Kind:    generichtml.NotificationSuccess,
			Message: accessrequest.SuccessMessage,
		})
	})

	assert.Equal(t, accessrequest.SuccessMessage, page.Find(".notification.success span").Text())
	assert.Equal(t, 1, page.Find("#accessRequestForm").Length())
	assert.Equal(t, "/access-request", page.Find(".nav-menu .nav-link.active").AttrOr("href", ""))
}
