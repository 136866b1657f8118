package event

type Type string

const (
	TypeNotifySuccess   Type = "notification.success"
	TypeNotifyError     Type = "notification.error"
	TypeDataRefreshed   Type = "data.refreshed"
	TypeContactReceived Type = "contact.received"
)

type Event struct {
	ID        string      `json:"id"`
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
	ActorID   string      `json:"actor_id,omitempty"` // Who triggered the event
}

// Notification is the payload for notification.* events shown as toasts.
type Notification struct {
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail"`
}

// Refresh is the payload for data.refreshed events, telling clients which
// tab's data changed.
type Refresh struct {
	Entity string `json:"entity"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
