package bundle

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/texbridge/errors"
	"github.com/wippyai/texbridge/status"
)

type notes struct {
	status.NoopBackend
	msgs []string
}

func (n *notes) Report(kind status.MessageKind, err error, format string, args ...any) {
	n.msgs = append(n.msgs, kind.String())
}

func newRedirectServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/default_bundle.tar", func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Redirect(w, r, "/bundles/v33.tar", http.StatusFound)
	})
	mux.HandleFunc("/bundles/v33.tar", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone.tar", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestResolve_FollowsRedirectAndCaches(t *testing.T) {
	srv, hits := newRedirectServer(t)
	r := NewResolver(t.TempDir(), WithHTTPClient(srv.Client()))
	url := srv.URL + "/default_bundle.tar"
	st := &notes{}

	b, err := r.Resolve(url, false, st)
	require.NoError(t, err)
	assert.Equal(t, url, b.Location)
	assert.Equal(t, srv.URL+"/bundles/v33.tar", b.Resolved)
	assert.False(t, b.Local)
	assert.Equal(t, []string{"note"}, st.msgs)

	b2, err := r.Resolve(url, false, st)
	require.NoError(t, err)
	assert.Equal(t, b.Resolved, b2.Resolved)
	assert.Equal(t, 1, *hits, "second resolution must come from cache")
}

func TestResolve_OnlyCached(t *testing.T) {
	srv, _ := newRedirectServer(t)
	dir := t.TempDir()
	url := srv.URL + "/default_bundle.tar"

	_, err := NewResolver(dir).Resolve(url, true, status.NoopBackend{})
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBundle, Kind: errors.KindNotCached})

	_, err = NewResolver(dir, WithHTTPClient(srv.Client())).Resolve(url, false, status.NoopBackend{})
	require.NoError(t, err)
	srv.Close()

	b, err := NewResolver(dir).Resolve(url, true, status.NoopBackend{})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/bundles/v33.tar", b.Resolved)
}

func TestResolve_HTTPFailure(t *testing.T) {
	srv, _ := newRedirectServer(t)
	r := NewResolver(t.TempDir(), WithHTTPClient(srv.Client()))

	_, err := r.Resolve(srv.URL+"/gone.tar", false, status.NoopBackend{})
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBundle, Kind: errors.KindNetwork})
}

func TestResolve_CorruptCacheEntry(t *testing.T) {
	srv, hits := newRedirectServer(t)
	dir := t.TempDir()
	r := NewResolver(dir, WithHTTPClient(srv.Client()))
	url := srv.URL + "/default_bundle.tar"

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "urls"), 0o755))
	require.NoError(t, os.WriteFile(r.pathFor(url), []byte{0xc1, 0xc1}, 0o644))

	b, err := r.Resolve(url, false, status.NoopBackend{})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/bundles/v33.tar", b.Resolved)
	assert.Equal(t, 1, *hits)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0o644))

	b, err := Open(path)
	require.NoError(t, err)
	assert.True(t, b.Local)
	assert.Equal(t, path, b.Resolved)

	_, err = Open(filepath.Join(dir, "missing.zip"))
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseBundle, Kind: errors.KindNotFound})
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://relay.fullyjustified.net/default_bundle_v33.tar"))
	assert.True(t, IsURL("http://localhost/b.tar"))
	assert.False(t, IsURL("/var/lib/tex/bundle.zip"))
	assert.False(t, IsURL("file:///bundle.zip"))
}
