package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/wippyai/texbridge/errors"
	"github.com/wippyai/texbridge/status"
)

// Current schema version - increment when cacheEntry format changes
const cacheSchemaVersion uint16 = 1

// cacheEntry records where a bundle URL redirected to.
type cacheEntry struct {
	Schema     uint16
	URL        string
	Resolved   string
	ResolvedAt time.Time
}

// Resolver resolves web bundle URLs and caches the results under a directory.
type Resolver struct {
	client *http.Client
	dir    string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient sets the client used for redirect resolution.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) {
		r.client = c
	}
}

// NewResolver creates a resolver caching into cacheDir/urls.
func NewResolver(cacheDir string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client: http.DefaultClient,
		dir:    filepath.Join(cacheDir, "urls"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) pathFor(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(r.dir, hex.EncodeToString(sum[:])+".mp")
}

// Resolve returns the web bundle for url. A cached resolution is used when
// present; otherwise, unless onlyCached is set, the redirect chain is followed
// and the result stored.
func (r *Resolver) Resolve(url string, onlyCached bool, st status.Backend) (*Bundle, error) {
	entry, ok, err := r.get(url)
	if err != nil {
		// A damaged entry is treated as a miss and overwritten below.
		Logger().Warn("discarding unreadable bundle cache entry",
			zap.String("url", url), zap.Error(err))
	}
	if ok {
		Logger().Debug("bundle URL resolved from cache",
			zap.String("url", url), zap.String("resolved", entry.Resolved))
		return &Bundle{Location: url, Resolved: entry.Resolved}, nil
	}

	if onlyCached {
		return nil, errors.NotCached(errors.PhaseBundle, fmt.Sprintf("bundle URL %q", url))
	}

	resolved, err := r.follow(url)
	if err != nil {
		return nil, err
	}
	if resolved != url {
		status.Notef(st, "resolved bundle URL %s to %s", url, resolved)
	}

	if err := r.put(&cacheEntry{
		Schema:     cacheSchemaVersion,
		URL:        url,
		Resolved:   resolved,
		ResolvedAt: time.Now().UTC(),
	}); err != nil {
		status.Warnf(st, err, "failed to cache resolution of %s", url)
	}

	return &Bundle{Location: url, Resolved: resolved}, nil
}

func (r *Resolver) follow(url string) (string, error) {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return "", errors.InvalidInput(errors.PhaseBundle, fmt.Sprintf("bad bundle URL %q: %v", url, err))
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", errors.Network(errors.PhaseBundle, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Network(errors.PhaseBundle, url, fmt.Errorf("unexpected HTTP status %s", resp.Status))
	}
	return resp.Request.URL.String(), nil
}

func (r *Resolver) get(url string) (*cacheEntry, bool, error) {
	f, err := os.Open(r.pathFor(url))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, err
	}
	if entry.Schema != cacheSchemaVersion || entry.URL != url || entry.Resolved == "" {
		return nil, false, nil
	}
	return &entry, true, nil
}

func (r *Resolver) put(entry *cacheEntry) error {
	p := r.pathFor(entry.URL)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}
