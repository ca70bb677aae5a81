package offline

import (
	"net/http"
	"strconv"
)

// Source says where a response should come from.
type Source int

const (
	FromNetwork Source = iota
	FromCache
)

func (s Source) String() string {
	if s == FromCache {
		return "cache"
	}
	return "network"
}

// Matcher is anything that can look a URL up, such as a Cache or Storage.
type Matcher interface {
	Match(rawURL string) (*Entry, bool)
}

// Resolve decides, without side effects, whether req is answered from the
// cache contents in m or from the network. Only GET requests match.
func Resolve(req *http.Request, m Matcher) (Source, *Entry) {
	if req == nil || req.Method != http.MethodGet || req.URL == nil {
		return FromNetwork, nil
	}
	e, ok := m.Match(req.URL.String())
	if !ok {
		return FromNetwork, nil
	}
	return FromCache, e
}

// WriteEntry replays a stored response onto w.
func WriteEntry(w http.ResponseWriter, e *Entry) error {
	h := w.Header()
	for k, vs := range e.Header {
		h[k] = append([]string(nil), vs...)
	}
	h.Set("Content-Length", strconv.Itoa(len(e.Body)))
	h.Set("X-Cache", "HIT")
	status := e.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(e.Body)
	return err
}
