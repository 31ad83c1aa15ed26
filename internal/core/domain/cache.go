package domain

import (
	"errors"
	"net/http"
)

var (
	// ErrCacheMiss is returned by cache storage when a key has no entry.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheInstall means one or more manifest assets could not be
	// fetched; the install is all-or-nothing.
	ErrCacheInstall = errors.New("cache install failed")
	// ErrGatewayNetwork is surfaced when the network fails and no fallback
	// is defined for the requested content type.
	ErrGatewayNetwork = errors.New("network fetch failed")
)

// StaticGeneration names the static cache generation for a version.
func StaticGeneration(version string) string { return "todo-static-v" + version }

// DynamicGeneration names the dynamic cache generation for a version.
func DynamicGeneration(version string) string { return "todo-dynamic-v" + version }

// CachedResponse is a stored network response. Entries are addressed by
// request URL, not content hash; generations never merge entries, so
// last-write-wins on the same key is safe.
type CachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// Clone returns an independent copy so a cached entry can be served while
// the original stays immutable in storage.
func (r *CachedResponse) Clone() *CachedResponse {
	if r == nil {
		return nil
	}
	c := &CachedResponse{Status: r.Status, Header: r.Header.Clone()}
	c.Body = append([]byte(nil), r.Body...)
	return c
}
