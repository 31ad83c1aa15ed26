package domain

import (
	"fmt"
	"time"
)

// Urgency is the due-date-relative bucket driving notifications and styling.
type Urgency string

const (
	UrgencyOverdue     Urgency = "overdue"
	UrgencyDueToday    Urgency = "due-today"
	UrgencyDueTomorrow Urgency = "due-tomorrow"
	UrgencyDueSoon     Urgency = "due-soon"
	UrgencyNormal      Urgency = "normal"
)

// DaysUntilDue is ceil((due - now) / 24h). Negative means overdue.
func DaysUntilDue(due, now time.Time) int {
	d := due.Sub(now)
	days := int(d / (24 * time.Hour))
	if d > 0 && d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Classification is the urgency verdict for one todo at one point in time.
type Classification struct {
	Urgency      Urgency `json:"urgency"`
	DaysUntilDue int     `json:"days_until_due"`
	// OverdueDays is set only for overdue tasks (positive day count).
	OverdueDays int `json:"overdue_days,omitempty"`
}

// ClassifyDue buckets a due date relative to now:
// overdue (<0), due-today (0), due-tomorrow (1), due-soon (2-3), normal (>3).
func ClassifyDue(due, now time.Time) Classification {
	days := DaysUntilDue(due, now)
	c := Classification{DaysUntilDue: days}
	switch {
	case days < 0:
		c.Urgency = UrgencyOverdue
		c.OverdueDays = -days
	case days == 0:
		c.Urgency = UrgencyDueToday
	case days == 1:
		c.Urgency = UrgencyDueTomorrow
	case days <= 3:
		c.Urgency = UrgencyDueSoon
	default:
		c.Urgency = UrgencyNormal
	}
	return c
}

// Critical reports whether the bucket warrants an audible alert.
func (c Classification) Critical() bool {
	return c.Urgency == UrgencyOverdue || c.Urgency == UrgencyDueToday
}

// Badge is the short label rendered next to the task.
func (c Classification) Badge() string {
	switch c.Urgency {
	case UrgencyOverdue:
		if c.OverdueDays == 1 {
			return "1 day overdue"
		}
		return fmt.Sprintf("%d days overdue", c.OverdueDays)
	case UrgencyDueToday:
		return "Due Today"
	case UrgencyDueTomorrow:
		return "Due Tomorrow"
	case UrgencyDueSoon:
		return fmt.Sprintf("%d days left", c.DaysUntilDue)
	default:
		return ""
	}
}

// AlertMessage is the reminder text for a task in this bucket. Empty when
// the bucket does not warrant a reminder.
func (c Classification) AlertMessage(task string) string {
	switch c.Urgency {
	case UrgencyOverdue:
		return fmt.Sprintf("Task %q is OVERDUE!", task)
	case UrgencyDueToday:
		return fmt.Sprintf("Task %q is due TODAY!", task)
	case UrgencyDueTomorrow:
		return fmt.Sprintf("Task %q is due tomorrow!", task)
	default:
		return ""
	}
}
