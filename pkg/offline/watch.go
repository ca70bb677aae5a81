package offline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher evicts cached entries when the files behind them change on disk.
type Watcher struct {
	dir     string
	prefix  string
	cache   *Cache
	watcher *fsnotify.Watcher
	logger  logrus.FieldLogger
	done    chan struct{}
	// evicted reports evicted URLs; reports are dropped when it is full.
	evicted chan string
}

// NewWatcher watches dir, whose files are served under urlPrefix, and evicts
// the matching entries of cache.
func NewWatcher(dir, urlPrefix string, cache *Cache, logger logrus.FieldLogger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize watcher")
	}

	w := &Watcher{
		dir:     filepath.Clean(dir),
		prefix:  "/" + strings.Trim(urlPrefix, "/"),
		cache:   cache,
		watcher: fw,
		logger:  logger,
		done:    make(chan struct{}),
		evicted: make(chan string, 16),
	}

	err = filepath.WalkDir(w.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", dir)
	}

	go w.watch()
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watch() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warnf("failed to watch %s: %v", event.Name, err)
			}
			return
		}
	}

	url, ok := w.urlFor(event.Name)
	if !ok {
		return
	}
	if w.cache.Delete(url) {
		w.logger.WithFields(logrus.Fields{
			"url":   url,
			"event": event.Op.String(),
		}).Info("evicted stale cache entry")
		select {
		case w.evicted <- url:
		default:
		}
	}
}

func (w *Watcher) urlFor(path string) (string, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return strings.TrimRight(w.prefix, "/") + "/" + filepath.ToSlash(rel), true
}
