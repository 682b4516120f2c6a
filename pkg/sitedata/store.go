package sitedata

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/composio/docsite/pkg/apis/cache"
	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/dataloader"
	"github.com/composio/docsite/pkg/dataloader/docloader"
	"github.com/composio/docsite/pkg/dataloader/loaderwithmetrics"
)

// Snapshot is an immutable view of the loaded documents. A nil document
// means it failed to load and there is nothing to render for it.
type Snapshot struct {
	Changelog *docsv1.ChangelogDocument
	LoadTests *docsv1.LoadTestDocument
	LoadedAt  time.Time
}

// Store owns the current Snapshot and replaces it wholesale on every load.
type Store struct {
	source      docloader.Source
	cache       cache.Cache
	cacheExpiry time.Duration

	loadLock sync.Mutex

	lock      sync.RWMutex
	snapshot  Snapshot
	listeners []func(Snapshot)
}

func NewStore(source docloader.Source, c cache.Cache, cacheExpiry time.Duration) *Store {
	return &Store{
		source:      source,
		cache:       c,
		cacheExpiry: cacheExpiry,
	}
}

// NewStaticStore returns a store that always serves the given snapshot.
// Load is a no-op for it.
func NewStaticStore(snapshot Snapshot) *Store {
	return &Store{snapshot: snapshot}
}

// OnLoad registers fn to be called with every newly published snapshot.
func (s *Store) OnLoad(fn func(Snapshot)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Current returns the latest published snapshot.
func (s *Store) Current() Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.snapshot
}

// Load fetches both documents concurrently and publishes a new snapshot.
// A document that fails keeps its previously loaded version, or stays nil if
// it never loaded. Failures are logged and returned, never retried.
// Concurrent calls are serialised.
func (s *Store) Load(ctx context.Context, forceRefresh bool) []error {
	if s.source == nil {
		return nil
	}

	s.loadLock.Lock()
	defer s.loadLock.Unlock()

	opts := cache.RequestOptions{ForceRefresh: forceRefresh, Expiry: s.cacheExpiry}
	changelogLoader := docloader.NewChangelogLoader(s.source, s.cache, opts)
	loadTestLoader := docloader.NewLoadTestLoader(s.source, s.cache, opts)

	loader := loaderwithmetrics.New([]dataloader.DataLoader{changelogLoader, loadTestLoader})
	loader.Load(ctx)

	s.lock.Lock()
	previous := s.snapshot
	snapshot := Snapshot{
		Changelog: changelogLoader.Document(),
		LoadTests: loadTestLoader.Document(),
		LoadedAt:  time.Now(),
	}
	stale := false
	if snapshot.Changelog == nil && previous.Changelog != nil {
		snapshot.Changelog, stale = previous.Changelog, true
	}
	if snapshot.LoadTests == nil && previous.LoadTests != nil {
		snapshot.LoadTests, stale = previous.LoadTests, true
	}
	// LoadedAt only moves forward when nothing on display is left over.
	if stale {
		snapshot.LoadedAt = previous.LoadedAt
	}
	s.snapshot = snapshot
	listeners := append([]func(Snapshot){}, s.listeners...)
	s.lock.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}

	errs := loader.Errors()
	if len(errs) > 0 {
		log.WithField("errors", len(errs)).Warning("site data loaded with errors")
	} else {
		log.WithField("source", s.source.String()).Info("site data loaded")
	}
	return errs
}
