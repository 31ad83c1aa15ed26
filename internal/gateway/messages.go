package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Control message types exchanged between page and controller.
const (
	MsgSkipWaiting = "SKIP_WAITING"
	MsgCheckUpdate = "CHECK_UPDATE"

	ReplyAck             = "SW_RESPONSE"
	ReplyUpdateAvailable = "UPDATE_AVAILABLE"
)

// Message is a tagged control message. Reply, when non-nil, receives
// exactly one Reply; an unanswered reply channel would leave the sender
// waiting forever.
type Message struct {
	Type  string       `json:"type"`
	Reply chan<- Reply `json:"-"`
}

// Reply is the controller's answer to a control message.
type Reply struct {
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	HasUpdate *bool  `json:"hasUpdate,omitempty"`
}

// HandleMessage processes one control message. Unknown types still get the
// generic ack so the caller's wait always resolves.
func (c *Controller) HandleMessage(ctx context.Context, msg Message) {
	reply := Reply{Type: ReplyAck, Message: "service worker is active"}

	switch msg.Type {
	case MsgSkipWaiting:
		c.SkipWaiting()
		c.log.Info().Msg("skip-waiting requested")
	case MsgCheckUpdate:
		has := c.checkForUpdate(ctx)
		reply = Reply{Type: ReplyUpdateAvailable, HasUpdate: &has}
	default:
		c.log.Debug().Str("type", msg.Type).Msg("unknown control message")
	}

	if msg.Reply != nil {
		msg.Reply <- reply
	}
}

// checkForUpdate refetches the version resource from the upstream origin
// and compares it to this controller's version marker. Any failure reads as
// "no update", as an unreachable origin cannot offer one.
func (c *Controller) checkForUpdate(ctx context.Context) bool {
	target := c.upstream.ResolveReference(&url.URL{Path: c.versionPath})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("update check request failed")
		return false
	}

	res, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("update check fetch failed")
		return false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.log.Debug().Int("status", res.StatusCode).Msg("update check got non-200")
		return false
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.log.Debug().Err(err).Msg("update check read failed")
		return false
	}

	remote := strings.TrimSpace(string(body))
	return remote != "" && remote != c.version
}
