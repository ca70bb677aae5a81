package offline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves a single resource from the network.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*Entry, error)
}

// HTTPFetcher fetches paths relative to a remote origin.
type HTTPFetcher struct {
	Origin string
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher for origin with a bounded client timeout.
func NewHTTPFetcher(origin string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Origin: strings.TrimRight(origin, "/"),
		Client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Origin+path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", path)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read body of %s", path)
	}
	return &Entry{
		URL:      path,
		Status:   resp.StatusCode,
		Header:   resp.Header.Clone(),
		Body:     body,
		StoredAt: time.Now(),
	}, nil
}

// HandlerFetcher fetches from an in-process handler, so a server can install
// its own assets before it starts listening.
type HandlerFetcher struct {
	Handler http.Handler
}

func (f *HandlerFetcher) Fetch(ctx context.Context, path string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", path)
	}
	rec := newEntryRecorder()
	f.Handler.ServeHTTP(rec, req)
	return &Entry{
		URL:      path,
		Status:   rec.status,
		Header:   rec.header,
		Body:     rec.body.Bytes(),
		StoredAt: time.Now(),
	}, nil
}

// entryRecorder is a minimal ResponseWriter capturing a response into memory.
type entryRecorder struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newEntryRecorder() *entryRecorder {
	return &entryRecorder{header: make(http.Header), status: http.StatusOK}
}

func (r *entryRecorder) Header() http.Header { return r.header }

func (r *entryRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
}

func (r *entryRecorder) Write(p []byte) (int, error) {
	r.WriteHeader(http.StatusOK)
	return r.body.Write(p)
}

// FetchError reports a manifest URL that could not be installed.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("precache %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("precache %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Progress is called after each URL is fetched successfully.
type Progress func(done, total int, e *Entry)

// InstallOptions tunes Install.
type InstallOptions struct {
	Concurrency int
	Progress    Progress
	Logger      logrus.FieldLogger
	// DryRun fetches everything but commits nothing.
	DryRun bool
}

// Install fetches every URL of m and commits them into the cache named by m.
// It is all-or-nothing: a failed fetch or a non-2xx response leaves storage
// untouched. The fetched entries are returned in manifest order.
func Install(ctx context.Context, s *Storage, m Manifest, f Fetcher, opts InstallOptions) ([]*Entry, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}

	entries := make([]*Entry, len(m.URLs))
	done := make(chan *Entry)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		n := 0
		for e := range done {
			n++
			if opts.Progress != nil {
				opts.Progress(n, len(m.URLs), e)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, u := range m.URLs {
		i, u := i, u
		g.Go(func() error {
			e, err := f.Fetch(gctx, u)
			if err != nil {
				return &FetchError{URL: u, Err: err}
			}
			if e.Status < 200 || e.Status > 299 {
				return &FetchError{URL: u, Status: e.Status}
			}
			entries[i] = e
			done <- e
			return nil
		})
	}
	err := g.Wait()
	close(done)
	<-progressDone
	if err != nil {
		logger.WithField("cache", m.CacheName).Warnf("install aborted: %v", err)
		return nil, err
	}

	if !opts.DryRun {
		s.Open(m.CacheName).putAll(entries)
		logger.WithFields(logrus.Fields{
			"cache": m.CacheName,
			"urls":  len(entries),
		}).Info("opened cache")
	}
	return entries, nil
}
