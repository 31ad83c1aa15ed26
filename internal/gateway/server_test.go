package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/infrastructure/cache"
)

func TestServer_NotificationClick(t *testing.T) {
	u := newUpstream(t)
	ctrl := newTestController(t, u, cache.NewMemoryStore(), Config{})
	installAndActivate(t, ctrl)
	srv := NewServer(ctrl)

	cases := []struct {
		name   string
		action string
		open   bool
		path   string
	}{
		{"view opens the app", domain.ActionView, true, "/"},
		{"dismiss opens nothing", domain.ActionDismiss, false, ""},
		{"unknown action falls back to the root", "snooze", true, "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := strings.NewReader(`{"action":"` + tc.action + `"}`)
			req := httptest.NewRequest(http.MethodPost, "/sw/notification-click", body)
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var resp clickResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Open != tc.open || resp.Path != tc.path {
				t.Fatalf("action %q resolved to open=%v path=%q", tc.action, resp.Open, resp.Path)
			}
		})
	}
}

func TestServer_State(t *testing.T) {
	u := newUpstream(t)
	ctrl := newTestController(t, u, cache.NewMemoryStore(), Config{})
	installAndActivate(t, ctrl)
	srv := NewServer(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/sw/state", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.State != StateActive || resp.Version != testVersion {
		t.Fatalf("unexpected state payload: %+v", resp)
	}
}
