package docloader

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"resty.dev/v3"
)

// Source reads a document by its site-relative path, e.g. data/changelog.json.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	String() string
}

// IsRemote reports whether location is an http(s) URL rather than a
// directory.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource for
// anything else.
func NewSource(location string, timeout time.Duration) Source {
	if IsRemote(location) {
		return NewHTTPSource(location, timeout)
	}
	return NewFileSource(location)
}

// HTTPSource fetches documents relative to a base URL. Requests are never
// retried; a zero timeout means the request may block until ctx is done.
type HTTPSource struct {
	client  *resty.Client
	baseURL string
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPSource{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	target, err := url.JoinPath(s.baseURL, path)
	if err != nil {
		return nil, errors.Wrapf(err, "building url for %s", path)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", target)
	}

	if !resp.IsSuccess() {
		return nil, errors.Errorf("fetching %s: unexpected status %d", target, resp.StatusCode())
	}

	return resp.Bytes(), nil
}

func (s *HTTPSource) String() string {
	return s.baseURL
}

func (s *HTTPSource) Close() error {
	return s.client.Close()
}

// FileSource reads documents from a local directory, typically the root of
// a checked out docs/ tree.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, errors.Errorf("document path %q escapes %s", path, s.dir)
	}
	b, err := os.ReadFile(filepath.Join(s.dir, clean))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return b, nil
}

func (s *FileSource) String() string {
	return s.dir
}

// Dir is the directory documents are read from.
func (s *FileSource) Dir() string {
	return s.dir
}
