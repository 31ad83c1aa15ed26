// Package metrics defines all custom Prometheus metrics for the offline
// todo service. It is the single source of truth for metric names, labels,
// and help strings; registration happens at import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// ── Gateway cache metrics ─────────────────────────────────────────────────────

// CacheHitsTotal counts fetches answered from cache without touching the
// network.
// Label:
//   - generation: "static" or "dynamic"
var CacheHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of intercepted fetches served from cache.",
	},
	[]string{"generation"},
)

// CacheMissesTotal counts fetches that fell through to the network.
var CacheMissesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of intercepted fetches not found in any live generation.",
	},
)

// FetchFallbacksTotal counts network failures resolved by the fallback ladder.
// Label:
//   - kind: "offline_page", "placeholder_image", or "error" (no fallback defined)
var FetchFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_fallbacks_total",
		Help:      "Total number of failed network fetches resolved per fallback kind.",
	},
	[]string{"kind"},
)

// CacheInstallsTotal counts install attempts.
// Label:
//   - result: "ok" or "failed"
var CacheInstallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_installs_total",
		Help:      "Total number of static cache installs, labelled by result.",
	},
	[]string{"result"},
)

// GenerationsPurgedTotal counts stale cache generations removed on activation.
var GenerationsPurgedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_purged_total",
		Help:      "Total number of stale cache generations deleted during activation.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts deadline and push notifications delivered.
// Label:
//   - channel: "platform", "banner", or "beep"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications delivered, by channel.",
	},
	[]string{"channel"},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodosMutatedTotal counts todo mutations by operation.
// Label:
//   - op: "add", "toggle", "edit", "delete", "delete_all"
var TodosMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_mutated_total",
		Help:      "Total number of todo list mutations, by operation.",
	},
	[]string{"op"},
)
