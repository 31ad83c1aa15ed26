package domain

import "time"

const (
	ActionView    = "view"
	ActionDismiss = "dismiss"

	DefaultPushTitle = "Todo Reminder"
	DefaultPushBody  = "You have a todo reminder!"
)

// NotificationAction is a user-selectable button on a platform notification.
type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// Notification is a platform-level alert. Tag deduplicates repeated alerts
// for the same todo.
type Notification struct {
	Tag     string               `json:"tag"`
	Title   string               `json:"title"`
	Body    string               `json:"body"`
	OwnerID string               `json:"owner_id,omitempty"`
	Urgent  bool                 `json:"urgent"`
	Actions []NotificationAction `json:"actions,omitempty"`
}

// DefaultActions are the two buttons every reminder carries.
func DefaultActions() []NotificationAction {
	return []NotificationAction{
		{Action: ActionView, Title: "View Todo"},
		{Action: ActionDismiss, Title: "Dismiss"},
	}
}

// ResolveAction maps a clicked notification action to the path the client
// should open. Dismiss (and only dismiss) opens nothing; any other action,
// including an unrecognised one, falls back to the app root.
func ResolveAction(action string) (path string, open bool) {
	if action == ActionDismiss {
		return "", false
	}
	return "/", true
}

// Banner is an in-app ephemeral alert, auto-dismissed after its TTL.
type Banner struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
