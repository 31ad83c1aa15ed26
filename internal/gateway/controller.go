// Package gateway implements the offline cache controller: an HTTP layer
// that fronts the app origin the way a service worker fronts the network.
// It owns the cache generation lifecycle (install, activate, versioned
// eviction), intercepts fetches cache-first, and relays control messages,
// background-sync triggers and push payloads.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/api/metrics"
	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

// State is the controller's lifecycle position.
type State string

const (
	StateInstalling State = "installing"
	StateWaiting    State = "waiting"
	StateActivating State = "activating"
	StateActive     State = "active"
)

const (
	defaultOfflinePath = "/offline.html"
	defaultVersionPath = "/app/version"
)

// DefaultManifest lists the origin-relative assets required for offline
// operation, offline fallback page included.
var DefaultManifest = []string{
	"/",
	"/index.html",
	"/css/style.css",
	"/js/app.js",
	"/manifest.json",
	defaultOfflinePath,
}

// Config assembles a Controller.
type Config struct {
	// Version tags the cache generations; bumping it makes every previous
	// generation stale.
	Version  string
	Upstream *url.URL
	// Manifest defaults to DefaultManifest when empty.
	Manifest    []string
	OfflinePath string
	VersionPath string
	// Client performs upstream fetches. Redirects are never followed: a
	// redirect response must reach the interception logic undisturbed so it
	// is returned uncached.
	Client     *http.Client
	Reconciler ports.Reconciler
	Sink       ports.NotificationSink
	Reminders  func(ctx context.Context) error
}

// Controller is the offline cache controller. One instance serves one
// origin; the host may run its handlers concurrently, so all state is
// guarded and cache writes tolerate racing reads.
type Controller struct {
	version     string
	upstream    *url.URL
	manifest    []string
	offlinePath string
	versionPath string
	client      *http.Client
	storage     ports.CacheStorage
	reconciler  ports.Reconciler
	sink        ports.NotificationSink
	reminders   func(ctx context.Context) error
	log         zerolog.Logger

	mu          sync.Mutex
	state       State
	skipWaiting bool
	installed   bool
}

func NewController(cfg Config, storage ports.CacheStorage, log zerolog.Logger) *Controller {
	manifest := cfg.Manifest
	if len(manifest) == 0 {
		manifest = DefaultManifest
	}
	offline := cfg.OfflinePath
	if offline == "" {
		offline = defaultOfflinePath
	}
	versionPath := cfg.VersionPath
	if versionPath == "" {
		versionPath = defaultVersionPath
	}
	// Shield interception from transparent redirect following regardless of
	// the client handed in. The caller's client is copied, not mutated.
	client := &http.Client{}
	if cfg.Client != nil {
		clone := *cfg.Client
		client = &clone
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Controller{
		version:     cfg.Version,
		upstream:    cfg.Upstream,
		manifest:    manifest,
		offlinePath: offline,
		versionPath: versionPath,
		client:      client,
		storage:     storage,
		reconciler:  cfg.Reconciler,
		sink:        cfg.Sink,
		reminders:   cfg.Reminders,
		log:         log,
		state:       StateInstalling,
	}
}

// StaticGeneration is the live static cache name for this controller.
func (c *Controller) StaticGeneration() string { return domain.StaticGeneration(c.version) }

// DynamicGeneration is the live dynamic cache name for this controller.
func (c *Controller) DynamicGeneration() string { return domain.DynamicGeneration(c.version) }

// State reports the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Version is the controller's version marker.
func (c *Controller) Version() string { return c.version }

// Install populates a fresh static generation from the asset manifest.
// The install is all-or-nothing: every manifest entry is fetched before
// anything is stored, so a single unreachable asset aborts the install and
// leaves any previous generation untouched. On success the controller
// signals skip-waiting and becomes eligible for activation immediately.
func (c *Controller) Install(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateInstalling
	c.log.Info().Str("generation", c.StaticGeneration()).Msg("installing static cache")

	// Phase 1: fetch everything. Nothing is stored until all fetches pass.
	entries := make(map[string]*domain.CachedResponse, len(c.manifest))
	for _, path := range c.manifest {
		res, err := c.fetchUpstream(ctx, path)
		if err != nil {
			metrics.CacheInstallsTotal.WithLabelValues("failed").Inc()
			return fmt.Errorf("%w: %s: %v", domain.ErrCacheInstall, path, err)
		}
		if res.Status != http.StatusOK {
			metrics.CacheInstallsTotal.WithLabelValues("failed").Inc()
			return fmt.Errorf("%w: %s: status %d", domain.ErrCacheInstall, path, res.Status)
		}
		entries[path] = res
	}

	// Phase 2: store. A storage failure rolls the partial generation back
	// so the previous one stays the only complete set.
	gen := c.StaticGeneration()
	for path, res := range entries {
		if err := c.storage.Put(ctx, gen, path, res); err != nil {
			if delErr := c.storage.Delete(ctx, gen); delErr != nil {
				c.log.Warn().Err(delErr).Str("generation", gen).Msg("rollback of partial install failed")
			}
			metrics.CacheInstallsTotal.WithLabelValues("failed").Inc()
			return fmt.Errorf("%w: store %s: %v", domain.ErrCacheInstall, path, err)
		}
	}

	c.installed = true
	c.skipWaiting = true
	c.state = StateWaiting
	metrics.CacheInstallsTotal.WithLabelValues("ok").Inc()
	c.log.Info().Int("assets", len(entries)).Msg("installation complete")
	return nil
}

// Activate promotes the controller: every cache generation whose name is
// neither the current static nor dynamic name is deleted. The purge is
// best-effort; an entry that fails to delete is logged and skipped.
func (c *Controller) Activate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.installed {
		return fmt.Errorf("activate before successful install")
	}
	c.state = StateActivating
	c.log.Info().Msg("activating")

	names, err := c.storage.Generations(ctx)
	if err != nil {
		// Without the listing the purge cannot run, but the controller can
		// still serve; stale generations get another chance next activation.
		c.log.Warn().Err(err).Msg("listing cache generations failed, skipping purge")
	} else {
		keepStatic, keepDynamic := c.StaticGeneration(), c.DynamicGeneration()
		for _, name := range names {
			if name == keepStatic || name == keepDynamic {
				continue
			}
			if err := c.storage.Delete(ctx, name); err != nil {
				c.log.Warn().Err(err).Str("generation", name).Msg("purge of stale generation failed")
				continue
			}
			metrics.GenerationsPurgedTotal.Inc()
			c.log.Info().Str("generation", name).Msg("deleted stale cache generation")
		}
	}

	c.state = StateActive
	c.log.Info().Str("version", c.version).Msg("activation complete")
	return nil
}

// SkipWaiting makes the controller eligible for activation unconditionally.
func (c *Controller) SkipWaiting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipWaiting = true
}

// fetchUpstream GETs an origin-relative path from the app origin and drains
// it into a storable response.
func (c *Controller) fetchUpstream(ctx context.Context, path string) (*domain.CachedResponse, error) {
	target := c.upstream.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}

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
