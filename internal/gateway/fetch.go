package gateway

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fadilarbi/todo-offline/internal/api/metrics"
	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

// ServeHTTP intercepts one fetch:
//
//  1. Cross-origin targets pass through untouched, never cached.
//  2. Only uncredentialed GETs participate in the cache. Cache lookup
//     spans the live static and dynamic generations; a hit is returned
//     without touching the network (cache-first).
//  3. On a miss (or a non-cacheable request) the request goes upstream. A
//     direct 200 to a cacheable request is cloned into the dynamic
//     generation and returned; any other shape (error status, redirect)
//     is returned uncached.
//  4. On network failure with no cached entry: documents get the
//     pre-cached offline page, images a placeholder; everything else
//     surfaces the failure.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.isCrossOrigin(r) {
		c.passThrough(w, r)
		return
	}

	key := requestKey(r)
	cacheable := isCacheable(r)

	if cacheable {
		if res, gen, ok := c.match(r, key); ok {
			metrics.CacheHitsTotal.WithLabelValues(gen).Inc()
			writeCached(w, res)
			return
		}
		metrics.CacheMissesTotal.Inc()
	}

	res, err := c.fetchNetwork(r)
	if err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("network fetch failed")
		c.fallback(w, r, key)
		return
	}

	if cacheable && res.Status == http.StatusOK {
		// Clone into the dynamic generation. Storage failures must not cost
		// the caller their response.
		if err := c.storage.Put(r.Context(), c.DynamicGeneration(), key, res.Clone()); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("dynamic cache write failed")
		}
	}

	writeCached(w, res)
}

// requestKey is the cache address of a request: its origin-relative URI.
func requestKey(r *http.Request) string {
	return r.URL.RequestURI()
}

// isCacheable reports whether a request may be answered from or stored
// into the cache. Entries are shared across callers and only ever hold
// GETs: mutating and Authorization-bearing requests always reach the
// origin.
func isCacheable(r *http.Request) bool {
	return r.Method == http.MethodGet && r.Header.Get("Authorization") == ""
}

// isCrossOrigin reports whether the request targets a different origin than
// the one this controller fronts. Only absolute-form (proxy-style) requests
// can do so; origin-relative requests are by construction same-origin.
func (c *Controller) isCrossOrigin(r *http.Request) bool {
	return r.URL.IsAbs() && r.URL.Host != c.upstream.Host
}

// passThrough forwards a cross-origin request verbatim: no cache, no
// fallback, failure surfaces as a gateway error.
func (c *Controller) passThrough(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), r.Method, r.URL.String(), r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	req.Header = r.Header.Clone()

	res, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("url", r.URL.String()).Msg("cross-origin fetch failed")
		http.Error(w, domain.ErrGatewayNetwork.Error(), http.StatusBadGateway)
		return
	}
	defer res.Body.Close()

	copyHeader(w.Header(), res.Header)
	w.WriteHeader(res.StatusCode)
	if _, err := io.Copy(w, res.Body); err != nil {
		c.log.Debug().Err(err).Msg("cross-origin body copy interrupted")
	}
}

// match checks the static generation first, then the dynamic one.
func (c *Controller) match(r *http.Request, key string) (*domain.CachedResponse, string, bool) {
	for _, gen := range []struct{ label, name string }{
		{"static", c.StaticGeneration()},
		{"dynamic", c.DynamicGeneration()},
	} {
		res, err := c.storage.Match(r.Context(), gen.name, key)
		if err == nil {
			return res, gen.label, true
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.log.Warn().Err(err).Str("generation", gen.name).Str("key", key).Msg("cache match failed")
		}
	}
	return nil, "", false
}

// fetchNetwork forwards the intercepted request upstream and drains the
// response so it can be both cached and served.
func (c *Controller) fetchNetwork(r *http.Request) (*domain.CachedResponse, error) {
	target := *c.upstream
	target.Path = r.URL.Path
	target.RawQuery = r.URL.RawQuery

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), r.Body)
	if err != nil {
		return nil, err
	}
	req.Header = r.Header.Clone()

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return &domain.CachedResponse{
		Status: res.StatusCode,
		Header: res.Header.Clone(),
		Body:   body,
	}, nil
}

// fallback resolves a total network failure per content type: offline page
// for documents, placeholder for images, surfaced error otherwise.
func (c *Controller) fallback(w http.ResponseWriter, r *http.Request, key string) {
	switch destination(r) {
	case "document":
		offline, err := c.storage.Match(r.Context(), c.StaticGeneration(), c.offlinePath)
		if err != nil {
			c.log.Error().Err(err).Str("key", key).Msg("offline page missing from static cache")
			break
		}
		metrics.FetchFallbacksTotal.WithLabelValues("offline_page").Inc()
		writeCached(w, offline)
		return
	case "image":
		metrics.FetchFallbacksTotal.WithLabelValues("placeholder_image").Inc()
		writePlaceholderImage(w)
		return
	}

	metrics.FetchFallbacksTotal.WithLabelValues("error").Inc()
	c.log.Warn().Str("key", key).Msg("fetch failed with no cache fallback")
	http.Error(w, domain.ErrGatewayNetwork.Error(), http.StatusBadGateway)
}

// destination classifies the expected content type of a request, preferring
// the explicit fetch-destination header and falling back to Accept.
func destination(r *http.Request) string {
	if dest := r.Header.Get("Sec-Fetch-Dest"); dest != "" {
		return dest
	}
	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "text/html"):
		return "document"
	case strings.HasPrefix(accept, "image/"):
		return "image"
	default:
		return ""
	}
}

func writeCached(w http.ResponseWriter, res *domain.CachedResponse) {
	copyHeader(w.Header(), res.Header)
	w.WriteHeader(res.Status)
	_, _ = w.Write(res.Body)
}

func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}
