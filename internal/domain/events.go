package domain

import "context"

const (
	EventActivitySignup     = "activity.signup"
	EventActivityUnregister = "activity.unregister"
)

type Event struct {
	Type    string
	Payload map[string]any
}

type EventBus interface {
	Publish(ctx context.Context, e Event)
}
