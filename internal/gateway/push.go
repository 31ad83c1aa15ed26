package gateway

import (
	"context"
	"encoding/json"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Push displays a notification for a push payload. The payload is optional
// JSON with optional title/body; anything malformed falls back to the
// documented defaults. Push never fails: a broken payload or sink must not
// crash the handler.
func (c *Controller) Push(ctx context.Context, payload []byte) domain.Notification {
	var p pushPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			c.log.Debug().Err(err).Msg("malformed push payload, using defaults")
			p = pushPayload{}
		}
	}

	if p.Title == "" {
		p.Title = domain.DefaultPushTitle
	}
	if p.Body == "" {
		p.Body = domain.DefaultPushBody
	}

	n := domain.Notification{
		Tag:     "push",
		Title:   p.Title,
		Body:    p.Body,
		Actions: domain.DefaultActions(),
	}

	if c.sink != nil {
		if err := c.sink.Notify(ctx, n); err != nil {
			c.log.Warn().Err(err).Msg("push notification delivery failed")
		}
	}
	return n
}

// NotificationClick resolves a clicked notification action to the client
// window to open. Dismiss closes the notification silently; any other
// action, unrecognised ones included, focuses the app root.
func (c *Controller) NotificationClick(action string) (path string, open bool) {
	path, open = domain.ResolveAction(action)
	c.log.Debug().Str("action", action).Bool("open", open).Msg("notification click")
	return path, open
}
