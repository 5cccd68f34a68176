package events

import "time"

const TypeSessionChanged = "session_changed"

// SessionChanged tells other console instances that the session was
// replaced or removed. Session is nil after logout.
type SessionChanged struct {
	Origin     string
	Reason     string
	Session    map[string]interface{}
	OccurredAt time.Time
}

func (e SessionChanged) EventType() string {
	return TypeSessionChanged
}

func (e SessionChanged) Payload() map[string]interface{} {
	return map[string]interface{}{
		"origin":      e.Origin,
		"reason":      e.Reason,
		"session":     e.Session,
		"occurred_at": e.OccurredAt.Format(time.RFC3339Nano),
	}
}

func (e SessionChanged) Timestamp() time.Time {
	return e.OccurredAt
}
