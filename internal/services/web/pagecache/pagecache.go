// Package pagecache keeps rendered public pages per locale and path until a
// content change invalidates them.
package pagecache

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/louisbranch/portfolio/internal/platform/logging"
)

// KeyFunc maps a request to the locale and locale-free path it renders.
// ok is false for requests that must bypass the cache.
type KeyFunc func(r *http.Request) (locale string, path string, ok bool)

type entry struct {
	status      int
	contentType string
	body        []byte
}

// Cache stores successful GET renderings. Fills for the same key are
// deduplicated; a fill that races an invalidation is served but not stored.
type Cache struct {
	key    KeyFunc
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]map[string]entry
	gens    map[string]uint64

	fills singleflight.Group
}

// New builds an empty cache.
func New(key KeyFunc, logger *zap.Logger) *Cache {
	return &Cache{
		key:     key,
		logger:  logging.OrNop(logger),
		entries: map[string]map[string]entry{},
		gens:    map[string]uint64{},
	}
}

// Invalidate drops every locale's rendering of each path.
func (c *Cache) Invalidate(_ context.Context, paths ...string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		p = normalize(p)
		delete(c.entries, p)
		c.gens[p]++
	}
	c.logger.Debug("page cache invalidated", zap.Strings("paths", paths))
}

// Len returns the number of stored renderings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, byLocale := range c.entries {
		n += len(byLocale)
	}
	return n
}

// Middleware serves cached renderings and fills the cache on a miss.
func (c *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.RawQuery != "" || c.key == nil {
			next.ServeHTTP(w, r)
			return
		}
		locale, p, ok := c.key(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		p = normalize(p)
		if e, hit := c.lookup(locale, p); hit {
			w.Header().Set("X-Cache", "hit")
			e.write(w)
			return
		}

		v, _, shared := c.fills.Do(locale+" "+p, func() (any, error) {
			gen := c.generation(p)
			rec := &recorder{header: http.Header{}, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			e := entry{status: rec.status, contentType: rec.header.Get("Content-Type"), body: rec.body.Bytes()}
			if e.status == http.StatusOK {
				c.store(locale, p, gen, e)
			}
			return fillResult{entry: e, header: rec.header}, nil
		})
		res := v.(fillResult)
		if !shared {
			copyHeader(w.Header(), res.header)
		} else if res.entry.contentType != "" {
			w.Header().Set("Content-Type", res.entry.contentType)
		}
		w.Header().Set("X-Cache", "miss")
		w.WriteHeader(res.entry.status)
		_, _ = w.Write(res.entry.body)
	})
}

type fillResult struct {
	entry  entry
	header http.Header
}

func (c *Cache) lookup(locale, p string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[p][locale]
	return e, ok
}

func (c *Cache) generation(p string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[p]
}

func (c *Cache) store(locale, p string, gen uint64, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[p] != gen {
		return
	}
	byLocale, ok := c.entries[p]
	if !ok {
		byLocale = map[string]entry{}
		c.entries[p] = byLocale
	}
	byLocale[locale] = e
}

func (e entry) write(w http.ResponseWriter) {
	if e.contentType != "" {
		w.Header().Set("Content-Type", e.contentType)
	}
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		dst[k] = append([]string(nil), vs...)
	}
}

// recorder buffers a response so it can be stored and replayed.
type recorder struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = code
}

func (r *recorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.body.Write(b)
}
