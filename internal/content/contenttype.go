package content

import (
	"path/filepath"
	"strings"
)

// contentTypes is the fixed override table. It deliberately does not consult
// the platform MIME database so responses are identical across machines.
var contentTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".htm":   "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".mjs":   "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".wasm":  "application/wasm",
	".ico":   "image/x-icon",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".txt":   "text/plain; charset=utf-8",
}

// cacheableExts lists the static extensions that get a short public
// Cache-Control; everything else is served no-store so edits show up on the
// next reload.
var cacheableExts = map[string]bool{
	".css":   true,
	".js":    true,
	".mjs":   true,
	".png":   true,
	".jpg":   true,
	".jpeg":  true,
	".ico":   true,
	".svg":   true,
	".woff":  true,
	".woff2": true,
}

// TypeByExtension maps a file name to its content type, case-insensitively,
// falling back to a generic binary type for unknown extensions.
func TypeByExtension(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// CacheableExtension reports whether responses for this file may be cached
// briefly by the browser.
func CacheableExtension(name string) bool {
	return cacheableExts[strings.ToLower(filepath.Ext(name))]
}
