// Package notify shows desktop notifications over the freedesktop D-Bus
// interface.
package notify

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or themed icon name
	Timeout    int32  // ms; -1 lets the server decide, 0 never expires
	ReplacesID uint32 // id of a notification to update in place
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its server id.
	Notify(n Notification) (uint32, error)
	// Close dismisses a notification.
	Close(id uint32) error
}

// Nop drops every notification. It is used when no session bus exists.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }

func (Nop) Close(uint32) error { return nil }
