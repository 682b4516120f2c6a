package docsserver

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/composio/docsite/pkg/dataloader/docloader"
)

const watchDebounce = 500 * time.Millisecond

// DataWatcher reloads the documents when the files backing a local data
// source change. Bursts of events inside the debounce window cause a single
// reload.
type DataWatcher struct {
	server   *Server
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
}

// NewDataWatcher watches the data directory under root.
func NewDataWatcher(server *Server, root string) (*DataWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}

	dataDir := filepath.Join(root, filepath.Dir(filepath.FromSlash(docloader.ChangelogPath)))
	if err := w.Add(dataDir); err != nil {
		_ = w.Close()
		return nil, errors.Wrapf(err, "watching %s", dataDir)
	}

	files := map[string]bool{}
	for _, p := range []string{docloader.ChangelogPath, docloader.LoadTestsPath} {
		files[filepath.Join(root, filepath.FromSlash(p))] = true
	}

	return &DataWatcher{
		server:   server,
		watcher:  w,
		files:    files,
		debounce: watchDebounce,
	}, nil
}

// relevant ignores editor temp files and anything other than the documents.
func (d *DataWatcher) relevant(event fsnotify.Event) bool {
	if !d.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}

func (d *DataWatcher) Run(ctx context.Context) {
	defer d.watcher.Close()

	ticker := time.NewTicker(d.debounce / 5)
	defer ticker.Stop()

	var pendingSince time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if d.relevant(event) {
				log.WithFields(log.Fields{"file": event.Name, "op": event.Op.String()}).Debug("data file changed")
				pendingSince = time.Now()
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warning("file watcher error")
		case <-ticker.C:
			if pendingSince.IsZero() || time.Since(pendingSince) < d.debounce {
				continue
			}
			pendingSince = time.Time{}
			if errs := d.server.RefreshData(ctx, true); len(errs) > 0 {
				log.WithField("errors", len(errs)).Warning("reload after file change had failures")
			}
		}
	}
}
