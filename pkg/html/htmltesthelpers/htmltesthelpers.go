package htmltesthelpers

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// Collection of helpers and fixtures used for HTML tests

type recordedFunc func(*httptest.ResponseRecorder)

// Record runs testFunc against a response recorder and returns the body.
func Record(t *testing.T, testFunc recordedFunc) string {
	t.Helper()

	// Several of the HTML functions write to an http.ResponseWriter, so we
	// use an httptest.ResponseRecorder to read the written response.
	recorder := httptest.NewRecorder()

	testFunc(recorder)

	result := recorder.Result()
	defer result.Body.Close()

	buf := bytes.NewBufferString("")

	if _, err := io.Copy(buf, result.Body); err != nil {
		t.Fatal(err)
	}

	return buf.String()
}

func AssertHTTPResponseContains(t *testing.T, expectedContents []string, testFunc recordedFunc) {
	t.Helper()

	contents := Record(t, testFunc)

	for _, item := range expectedContents {
		if !strings.Contains(contents, item) {
			t.Errorf("expected result to contain: %s", item)
		}
	}
}

// Parse loads markup into a goquery document.
func Parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// RecordDocument runs testFunc and parses what it wrote.
func RecordDocument(t *testing.T, testFunc recordedFunc) *goquery.Document {
	t.Helper()
	return Parse(t, Record(t, testFunc))
}
