// Package notify keeps the transient, dismissible messages shown to the user.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level is the visual severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Mode selects how a new notification interacts with visible ones.
type Mode string

const (
	// ModeReplace shows only the newest notification.
	ModeReplace Mode = "replace"
	// ModeStack keeps up to MaxStack notifications, newest last.
	ModeStack Mode = "stack"
)

// MaxStack bounds the number of notifications kept in ModeStack.
const MaxStack = 5

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeReplace, ModeStack:
		return Mode(s), nil
	case "":
		return ModeReplace, nil
	}
	return "", fmt.Errorf("unknown notify mode %q (want replace or stack)", s)
}

// Notification is one visible message.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	Duration  time.Duration
	ExpiresAt time.Time
}

// Notifier implements model.Notifier. It is not safe for concurrent use;
// the UI loop owns it.
type Notifier struct {
	mode    Mode
	ttl     time.Duration
	now     func() time.Time
	visible []Notification
	posted  []Notification
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// New returns a notifier. ttl <= 0 uses 3s.
func New(mode Mode, ttl time.Duration, opts ...Option) *Notifier {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	if mode == "" {
		mode = ModeReplace
	}
	n := &Notifier{mode: mode, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Info, Success, Warning and Danger post msg at that level with the
// default duration.
func (n *Notifier) Info(msg string) { n.Show(LevelInfo, msg, 0) }
func (n *Notifier) Success(msg string) { n.Show(LevelSuccess, msg, 0) }
func (n *Notifier) Warning(msg string) { n.Show(LevelWarning, msg, 0) }
func (n *Notifier) Danger(msg string) { n.Show(LevelDanger, msg, 0) }

// Show posts a notification. d <= 0 uses the notifier's default duration.
func (n *Notifier) Show(level Level, msg string, d time.Duration) Notification {
	if d <= 0 {
		d = n.ttl
	}
	note := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		Duration:  d,
		ExpiresAt: n.now().Add(d),
	}

	switch n.mode {
	case ModeStack:
		n.visible = append(n.visible, note)
		if len(n.visible) > MaxStack {
			n.visible = n.visible[len(n.visible)-MaxStack:]
		}
	default:
		n.visible = []Notification{note}
	}
	n.posted = append(n.posted, note)
	return note
}

// Dismiss removes the notification with id. It reports whether it was visible.
func (n *Notifier) Dismiss(id string) bool {
	for i, v := range n.visible {
		if v.ID == id {
			n.visible = append(n.visible[:i], n.visible[i+1:]...)
			return true
		}
	}
	return false
}

// DismissAll clears every visible notification.
func (n *Notifier) DismissAll() {
	n.visible = nil
}

// Expire drops notifications whose deadline has passed and returns how
// many were removed.
func (n *Notifier) Expire() int {
	now := n.now()
	kept := n.visible[:0]
	for _, v := range n.visible {
		if now.Before(v.ExpiresAt) {
			kept = append(kept, v)
		}
	}
	removed := len(n.visible) - len(kept)
	n.visible = kept
	return removed
}

// Visible returns a copy of the notifications currently shown, oldest first.
func (n *Notifier) Visible() []Notification {
	out := make([]Notification, len(n.visible))
	copy(out, n.visible)
	return out
}

// Drain returns the notifications posted since the previous call.
// The UI uses it to schedule expiry timers.
func (n *Notifier) Drain() []Notification {
	p := n.posted
	n.posted = nil
	return p
}

// Mode returns the configured mode.
func (n *Notifier) Mode() Mode { return n.mode }
