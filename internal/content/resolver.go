// Package content maps request paths onto files under the document root.
package content

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Resource describes one resolved file, ready to be streamed.
type Resource struct {
	Path        string
	Size        int64
	ModTime     time.Time
	ContentType string
	Cacheable   bool
}

// Resolver translates request paths to resources under a fixed root.
// It holds no mutable state beyond an optional short-TTL stat cache, so a
// single instance is safe for concurrent use.
type Resolver struct {
	root  string
	cache *gocache.Cache
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCacheTTL enables caching of resolved metadata for ttl. Stale metadata
// within the window is acceptable for a dev tool; zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

// NewResolver creates a resolver rooted at dir.
func NewResolver(dir string, opts ...Option) *Resolver {
	r := &Resolver{root: dir}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps a request path to a Resource. The empty path and "/" resolve
// to /index.html; directory paths resolve to their index.html or fail with
// ErrForbidden; anything missing fails with ErrNotFound.
func (r *Resolver) Resolve(requestPath string) (*Resource, error) {
	if requestPath == "" || requestPath == "/" {
		requestPath = "/index.html"
	}

	// Clean with a leading slash so ".." segments cannot escape the root.
	clean := path.Clean("/" + requestPath)

	if r.cache != nil {
		if hit, ok := r.cache.Get(clean); ok {
			return hit.(*Resource), nil
		}
	}

	abs := filepath.Join(r.root, filepath.FromSlash(clean))
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}

	if info.IsDir() {
		abs = filepath.Join(abs, "index.html")
		info, err = os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrForbidden, clean)
		}
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}

	res := &Resource{
		Path:        abs,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: TypeByExtension(abs),
		Cacheable:   CacheableExtension(abs),
	}
	if r.cache != nil {
		r.cache.SetDefault(clean, res)
	}
	return res, nil
}

// Open opens the resolved file for streaming. Open failures surface as
// ErrNotFound: the file may have vanished or turned unreadable since Resolve.
func (r *Resolver) Open(res *Resource) (*os.File, error) {
	f, err := os.Open(res.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, res.Path)
	}
	return f, nil
}
