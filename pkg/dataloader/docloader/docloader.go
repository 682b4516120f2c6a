package docloader

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/composio/docsite/pkg/apis/cache"
	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/dataloader"
)

const (
	ChangelogPath = "data/changelog.json"
	LoadTestsPath = "data/load-tests.json"

	defaultCacheExpiry = time.Hour
)

// DocumentLoader loads one JSON document of type T from a Source.
type DocumentLoader[T any] struct {
	name        string
	path        string
	topLevelKey string

	source       Source
	cache        cache.Cache
	cacheOptions cache.RequestOptions

	doc  *T
	errs []error
}

var _ dataloader.DataLoader = &DocumentLoader[docsv1.ChangelogDocument]{}

func NewChangelogLoader(source Source, c cache.Cache, opts cache.RequestOptions) *DocumentLoader[docsv1.ChangelogDocument] {
	return &DocumentLoader[docsv1.ChangelogDocument]{
		name:         "changelog",
		path:         ChangelogPath,
		topLevelKey:  "changelog",
		source:       source,
		cache:        c,
		cacheOptions: opts,
	}
}

func NewLoadTestLoader(source Source, c cache.Cache, opts cache.RequestOptions) *DocumentLoader[docsv1.LoadTestDocument] {
	return &DocumentLoader[docsv1.LoadTestDocument]{
		name:         "load-tests",
		path:         LoadTestsPath,
		topLevelKey:  "loadTests",
		source:       source,
		cache:        c,
		cacheOptions: opts,
	}
}

func (l *DocumentLoader[T]) Name() string {
	return l.name
}

func (l *DocumentLoader[T]) Errors() []error {
	return l.errs
}

// Document returns the parsed document from the last Load, or nil if it failed.
func (l *DocumentLoader[T]) Document() *T {
	return l.doc
}

func (l *DocumentLoader[T]) Load(ctx context.Context) {
	l.doc = nil
	l.errs = nil

	logger := log.WithFields(log.Fields{
		"loader": l.name,
		"source": l.source.String(),
	})

	body, cached, err := l.fetch(ctx)
	if err != nil {
		logger.WithError(err).Error("error loading data")
		l.errs = append(l.errs, err)
		return
	}

	doc, err := Parse[T](body, l.topLevelKey)
	if err != nil {
		err = errors.Wrapf(err, "parsing %s", l.path)
		logger.WithError(err).Error("error loading data")
		l.errs = append(l.errs, err)
		return
	}

	if !cached {
		l.store(body)
	}
	l.doc = doc
	logger.WithFields(log.Fields{"bytes": len(body), "cached": cached}).Debug("document loaded")
}

// fetch reads the body from the cache when allowed, otherwise from the source.
func (l *DocumentLoader[T]) fetch(ctx context.Context) ([]byte, bool, error) {
	if l.cache != nil && !l.cacheOptions.ForceRefresh {
		if b, err := l.cache.Get(l.path); err == nil {
			log.WithField("key", l.path).Debug("cache hit")
			return b, true, nil
		}
		log.WithField("key", l.path).Info("cache miss")
	}

	b, err := l.source.Fetch(ctx, l.path)
	return b, false, err
}

// store caches a body that parsed, so a malformed document is never served
// from the cache.
func (l *DocumentLoader[T]) store(body []byte) {
	if l.cache == nil {
		return
	}
	expiry := l.cacheOptions.Expiry
	if expiry <= 0 {
		expiry = defaultCacheExpiry
	}
	if err := l.cache.Set(l.path, body, expiry); err != nil {
		log.WithError(err).Warning("couldn't persist document to cache")
	}
}

// Parse validates that body is JSON with an array under topLevelKey and
// unmarshals it into T.
func Parse[T any](body []byte, topLevelKey string) (*T, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed JSON")
	}
	if !gjson.GetBytes(body, topLevelKey).IsArray() {
		return nil, errors.Errorf("missing %q array", topLevelKey)
	}

	doc := new(T)
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
