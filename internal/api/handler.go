package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/creamcroissant/devserve/internal/content"
)

// StaticHandler serves resolved files and the error responses around them.
type StaticHandler struct {
	resolver  *content.Resolver
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
}

// NewStaticHandler builds the handler. The strict bluemonday policy strips
// any markup from request paths echoed into error bodies.
func NewStaticHandler(resolver *content.Resolver, logger *slog.Logger) *StaticHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StaticHandler{
		resolver:  resolver,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Get resolves and streams one file.
func (h *StaticHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.resolver.Resolve(r.URL.Path)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	f, err := h.resolver.Open(res)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer f.Close()

	header := w.Header()
	header.Set("Content-Type", res.ContentType)
	header.Set("Content-Length", strconv.FormatInt(res.Size, 10))
	header.Set("Last-Modified", res.ModTime.UTC().Format(http.TimeFormat))
	if res.Cacheable {
		header.Set("Cache-Control", "public, max-age=3600")
	} else {
		header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	}

	w.WriteHeader(http.StatusOK)
	if _, err := io.CopyN(w, f, res.Size); err != nil {
		// Client went away mid-transfer; nothing to clean up beyond the
		// deferred close.
		h.logger.Debug("response body aborted", "path", r.URL.Path, "error", err)
	}
}

// Preflight answers CORS preflight requests. The CORS headers themselves come
// from the shared security middleware.
func (h *StaticHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// NotImplemented is the default branch of the method dispatch table.
func (h *StaticHandler) NotImplemented(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w, r, http.StatusNotImplemented, "method not implemented")
}

func (h *StaticHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, content.ErrForbidden):
		h.writeStatus(w, r, http.StatusForbidden, "directory listing not allowed")
	default:
		h.writeStatus(w, r, http.StatusNotFound, "file not found")
	}
}

func (h *StaticHandler) writeStatus(w http.ResponseWriter, r *http.Request, status int, msg string) {
	header := w.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	fmt.Fprintf(w, "%d %s: %s\n", status, msg, h.sanitizer.Sanitize(r.URL.Path))
}
