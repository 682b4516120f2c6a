package docloader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composio/docsite/pkg/apis/cache"
)

const (
	changelogJSON = `{"changelog":[{"date":"2024-02-01","type":"helm","title":"Chart 0.4.0","description":"d","changes":["a"],"breaking":false}]}`
	loadTestsJSON = `{"loadTests":[{"id":"lt-1","date":"2024-02-01","time":"10:00","type":"stress","concurrentUsers":50,"avgResponseTime":120,"throughput":1500.5,"errorRate":0.2,"status":"passed"}]}`
)

type mapCache struct {
	items map[string][]byte
}

func (c *mapCache) Get(key string) ([]byte, error) {
	if b, ok := c.items[key]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("miss")
}

func (c *mapCache) Set(key string, content []byte, _ time.Duration) error {
	c.items[key] = content
	return nil
}

func newDataServer(t *testing.T, hits *int32) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/data/changelog.json", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		fmt.Fprint(w, changelogJSON)
	})
	mux.HandleFunc("/docs/data/load-tests.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"loadTests": [`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPSourceLoad(t *testing.T) {
	server := newDataServer(t, nil)
	source := NewSource(server.URL+"/docs/", 0)
	require.IsType(t, &HTTPSource{}, source)

	changelog := NewChangelogLoader(source, nil, cache.RequestOptions{})
	changelog.Load(context.Background())
	require.Empty(t, changelog.Errors())
	require.NotNil(t, changelog.Document())
	assert.Equal(t, "Chart 0.4.0", changelog.Document().Changelog[0].Title)

	// truncated body leaves the document unset
	loadTests := NewLoadTestLoader(source, nil, cache.RequestOptions{})
	loadTests.Load(context.Background())
	assert.Nil(t, loadTests.Document())
	assert.Len(t, loadTests.Errors(), 1)
}

func TestHTTPSourceStatusError(t *testing.T) {
	server := newDataServer(t, nil)
	source := NewHTTPSource(server.URL+"/missing/", time.Second)

	_, err := source.Fetch(context.Background(), ChangelogPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, LoadTestsPath), []byte(loadTestsJSON), 0o600))

	source := NewSource(dir, 0)
	require.IsType(t, &FileSource{}, source)
	assert.Equal(t, dir, source.(*FileSource).Dir())

	loadTests := NewLoadTestLoader(source, nil, cache.RequestOptions{})
	loadTests.Load(context.Background())
	require.Empty(t, loadTests.Errors())
	assert.Equal(t, "lt-1", loadTests.Document().LoadTests[0].ID)
	assert.InDelta(t, 1500.5, loadTests.Document().LoadTests[0].Throughput, 0.001)

	changelog := NewChangelogLoader(source, nil, cache.RequestOptions{})
	changelog.Load(context.Background())
	assert.Nil(t, changelog.Document())
	assert.NotEmpty(t, changelog.Errors())

	_, err := source.Fetch(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

func TestLoadUsesCache(t *testing.T) {
	var hits int32
	server := newDataServer(t, &hits)
	source := NewSource(server.URL+"/docs", 0)
	c := &mapCache{items: map[string][]byte{}}

	first := NewChangelogLoader(source, c, cache.RequestOptions{})
	first.Load(context.Background())
	require.NotNil(t, first.Document())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Contains(t, c.items, ChangelogPath)

	second := NewChangelogLoader(source, c, cache.RequestOptions{})
	second.Load(context.Background())
	require.NotNil(t, second.Document())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "cached body should be used")

	forced := NewChangelogLoader(source, c, cache.RequestOptions{ForceRefresh: true})
	forced.Load(context.Background())
	require.NotNil(t, forced.Document())
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestMalformedBodyNotCached(t *testing.T) {
	server := newDataServer(t, nil)
	source := NewSource(server.URL+"/docs", 0)
	c := &mapCache{items: map[string][]byte{}}

	loader := NewLoadTestLoader(source, c, cache.RequestOptions{})
	loader.Load(context.Background())

	assert.Nil(t, loader.Document())
	assert.NotEmpty(t, loader.Errors())
	assert.NotContains(t, c.items, LoadTestsPath)
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		location string
		expected bool
	}{
		{location: "http://localhost:8000", expected: true},
		{location: "https://docs.example.com/site", expected: true},
		{location: "/srv/docs", expected: false},
		{location: "docs", expected: false},
		{location: "file:///srv/docs", expected: false},
		{location: "ftp://example.com", expected: false},
	}
	for _, tc := range tests {
		t.Run(tc.location, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsRemote(tc.location))
			source, isHTTP := NewSource(tc.location, 0).(*HTTPSource)
			assert.Equal(t, tc.expected, isHTTP)
			if isHTTP {
				assert.NoError(t, source.Close())
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: changelogJSON},
		{name: "empty array", body: `{"changelog":[]}`},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "wrong key", body: `{"entries":[]}`, wantErr: true},
		{name: "not an array", body: `{"changelog":{}}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse[struct {
				Changelog []map[string]any `json:"changelog"`
			}]([]byte(tc.body), "changelog")
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
