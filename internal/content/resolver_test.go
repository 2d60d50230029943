package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, body string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newDocroot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "index.html", "<html>home</html>")
	writeFile(t, root, "app.js", "console.log('hi');")
	writeFile(t, root, "styles.css", "body{}")
	writeFile(t, root, filepath.Join("docs", "index.html"), "<html>docs</html>")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "media"), 0o755))
	return root
}

func TestResolveRootServesIndex(t *testing.T) {
	root := newDocroot(t)
	r := NewResolver(root)

	for _, requestPath := range []string{"", "/", "/index.html"} {
		res, err := r.Resolve(requestPath)
		require.NoError(t, err, "path %q", requestPath)
		assert.Equal(t, filepath.Join(root, "index.html"), res.Path)
		assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
		assert.Equal(t, int64(len("<html>home</html>")), res.Size)
	}

	slash, err := r.Resolve("/")
	require.NoError(t, err)
	explicit, err := r.Resolve("/index.html")
	require.NoError(t, err)
	assert.Equal(t, explicit, slash)
}

func TestResolveDirectoryWithIndex(t *testing.T) {
	r := NewResolver(newDocroot(t))

	res, err := r.Resolve("/docs")
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
	assert.Equal(t, filepath.Base(res.Path), "index.html")
}

func TestResolveDirectoryWithoutIndexForbidden(t *testing.T) {
	r := NewResolver(newDocroot(t))

	for _, requestPath := range []string{"/media", "/media/"} {
		_, err := r.Resolve(requestPath)
		require.ErrorIs(t, err, ErrForbidden, "path %q", requestPath)
	}
}

func TestResolveMissingNotFound(t *testing.T) {
	r := NewResolver(newDocroot(t))

	_, err := r.Resolve("/nope.js")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveTraversalStaysInRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "webroot")
	require.NoError(t, os.MkdirAll(root, 0o755))
	writeFile(t, root, "index.html", "ok")
	writeFile(t, parent, "secret.txt", "do not serve")

	r := NewResolver(root)

	_, err := r.Resolve("/../secret.txt")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve("/../../../../etc/passwd")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveStatCache(t *testing.T) {
	root := newDocroot(t)
	cached := NewResolver(root, WithCacheTTL(time.Minute))

	_, err := cached.Resolve("/app.js")
	require.NoError(t, err)

	// Within the TTL a deleted file still resolves from cache.
	require.NoError(t, os.Remove(filepath.Join(root, "app.js")))
	_, err = cached.Resolve("/app.js")
	assert.NoError(t, err)

	// Without a cache the deletion is visible immediately.
	uncached := NewResolver(root)
	_, err = uncached.Resolve("/app.js")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenVanishedFileNotFound(t *testing.T) {
	root := newDocroot(t)
	r := NewResolver(root)

	res, err := r.Resolve("/app.js")
	require.NoError(t, err)

	require.NoError(t, os.Remove(res.Path))
	_, err = r.Open(res)
	require.ErrorIs(t, err, ErrNotFound)
}
