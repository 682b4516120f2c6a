package flags

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/composio/docsite/pkg/dataloader/docloader"
)

// DataFlags configure where the changelog and load test documents come from
// and how often they are reloaded.
type DataFlags struct {
	Source          string
	FetchTimeout    time.Duration
	CacheExpiry     time.Duration
	RefreshInterval time.Duration
	Watch           bool

	envErr error
}

func NewDataFlags() *DataFlags {
	e, err := LoadEnvironment()
	return &DataFlags{
		Source:          e.DataSource,
		FetchTimeout:    e.FetchTimeout,
		CacheExpiry:     e.CacheExpiry,
		RefreshInterval: e.RefreshInterval,
		Watch:           e.Watch,
		envErr:          err,
	}
}

func (f *DataFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Source, "data-source", f.Source,
		"Directory or http(s) base URL holding data/changelog.json and data/load-tests.json")
	fs.DurationVar(&f.FetchTimeout, "fetch-timeout", f.FetchTimeout,
		"Timeout for fetching a document over http, 0 waits indefinitely")
	fs.DurationVar(&f.CacheExpiry, "cache-expiry", f.CacheExpiry,
		"How long fetched documents stay in the cache")
	fs.DurationVar(&f.RefreshInterval, "refresh-interval", f.RefreshInterval,
		"Reload the documents on this interval, 0 disables")
	fs.BoolVar(&f.Watch, "watch", f.Watch,
		"Reload the documents when a local data source changes on disk")
}

func (f *DataFlags) Validate() error {
	if f.envErr != nil {
		return f.envErr
	}
	if f.Source == "" {
		return errors.New("--data-source is required")
	}
	if f.FetchTimeout < 0 || f.CacheExpiry < 0 || f.RefreshInterval < 0 {
		return errors.New("durations must not be negative")
	}
	if f.Watch && !f.IsLocal() {
		return errors.Errorf("--watch needs a local data source, got %s", f.Source)
	}
	return nil
}

// IsLocal reports whether documents are read from the filesystem.
func (f *DataFlags) IsLocal() bool {
	return !docloader.IsRemote(f.Source)
}

func (f *DataFlags) GetSource() docloader.Source {
	return docloader.NewSource(f.Source, f.FetchTimeout)
}
