package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hufspace/hufspace-cli/pkg/offline"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	opts.Logger = testLogger()
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func press(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/press", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIndexRendersKeypad(t *testing.T) {
	s := newTestServer(t, Options{})
	w := get(t, s.Handler(), "/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<output id="result" name="result">0</output>`)
	assert.Contains(t, body, `value="/" class="operator">÷</button>`)
	assert.Contains(t, body, `value="DEL" class="control">DEL</button>`)
	assert.NotContains(t, body, `role="alert"`)
}

func TestPressRoundTripsState(t *testing.T) {
	s := newTestServer(t, Options{})

	w := press(t, s.Handler(), url.Values{
		"display":  {"5"},
		"operator": {"+"},
		"first":    {"3"},
		"reset":    {"false"},
		"key":      {"="},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<output id="result" name="result">8</output>`)
	assert.Contains(t, body, `name="operator" value=""`)
	assert.Contains(t, body, `name="reset" value="true"`)

	w = press(t, s.Handler(), url.Values{"display": {"2"}, "key": {"*"}})
	body = w.Body.String()
	assert.Contains(t, body, `name="operator" value="*"`)
	assert.Contains(t, body, `name="first" value="2"`)
	assert.Contains(t, body, `value="*" class="operator active"`)
}

func TestPressDivideByZeroShowsAlert(t *testing.T) {
	s := newTestServer(t, Options{})

	w := press(t, s.Handler(), url.Values{
		"display":  {"0"},
		"operator": {"/"},
		"first":    {"10"},
		"key":      {"="},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, `<output id="result" name="result">0</output>`)
	assert.Contains(t, body, `name="first" value=""`)
}

func TestPressRejectsBadInput(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "missing key", form: url.Values{"display": {"1"}}},
		{name: "unknown key", form: url.Values{"display": {"1"}, "key": {"%"}}},
		{name: "unknown operator", form: url.Values{"display": {"1"}, "operator": {"^"}, "first": {"1"}, "key": {"="}}},
		{name: "operator without operand", form: url.Values{"display": {"1"}, "operator": {"+"}, "key": {"="}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := press(t, s.Handler(), tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPrecacheServesFromCache(t *testing.T) {
	s := newTestServer(t, Options{Offline: true})
	require.NoError(t, s.Precache(context.Background()))

	assert.Equal(t, offline.DefaultManifest().URLs, sortedAs(offline.DefaultManifest().URLs, s.Storage().Open(offline.DefaultCacheName).Keys()))

	w := get(t, s.Handler(), "/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), ".calculator")

	w = get(t, s.Handler(), "/healthz")
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(t, s.Handler(), "/cache")
	assert.Contains(t, w.Body.String(), offline.DefaultCacheName)
}

func TestPrecacheFailsForMissingAsset(t *testing.T) {
	s := newTestServer(t, Options{
		Offline:  true,
		Manifest: offline.Manifest{CacheName: "v1", URLs: []string{"/", "/static/HUFSFont.ttf"}},
	})
	assert.Error(t, s.Precache(context.Background()))
	assert.False(t, s.Storage().Has("v1"))

	w := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestWithoutOfflineNothingIsCached(t *testing.T) {
	s := newTestServer(t, Options{})
	require.NoError(t, s.Precache(context.Background()))
	assert.Empty(t, s.Storage().Names())
}

func TestStaticDirWatchEvictsChangedAsset(t *testing.T) {
	dir := t.TempDir()
	asset := filepath.Join(dir, "app.css")
	require.NoError(t, os.WriteFile(asset, []byte("v1"), 0644))

	s := newTestServer(t, Options{
		StaticDir: dir,
		Watch:     true,
		Offline:   true,
		Manifest:  offline.Manifest{CacheName: "dev", URLs: []string{"/", "/static/app.css"}},
	})
	require.NoError(t, s.Precache(context.Background()))
	defer s.close()

	w := get(t, s.Handler(), "/static/app.css")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	require.NoError(t, os.WriteFile(asset, []byte("v2"), 0644))

	assert.Eventually(t, func() bool {
		_, ok := s.Storage().Open("dev").Match("/static/app.css")
		return !ok
	}, 5*time.Second, 20*time.Millisecond)

	w = get(t, s.Handler(), "/static/app.css")
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, "v2", w.Body.String())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, Options{})
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewRejectsMissingStaticDir(t *testing.T) {
	_, err := New(Options{StaticDir: filepath.Join(t.TempDir(), "missing"), Logger: testLogger()})
	assert.Error(t, err)
}

// sortedAs returns keys reordered to follow order, for comparing a sorted key
// list with a manifest.
func sortedAs(order, keys []string) []string {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	var out []string
	for _, o := range order {
		if set[o] {
			out = append(out, o)
		}
	}
	return out
}
