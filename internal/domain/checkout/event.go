package checkout

import "encoding/json"

// EventTypeCheckoutSessionCompleted is the provider's event type for a paid checkout session.
const EventTypeCheckoutSessionCompleted = "checkout.session.completed"

// Kind is the closed set of event kinds this service acts on.
// Everything the provider sends that is not listed here is KindUnhandled.
type Kind int

const (
	KindUnhandled Kind = iota
	KindCheckoutSessionCompleted
)

func (k Kind) String() string {
	switch k {
	case KindCheckoutSessionCompleted:
		return EventTypeCheckoutSessionCompleted
	default:
		return "unhandled"
	}
}

// ParseKind maps a provider event type to a Kind using exact string equality.
func ParseKind(eventType string) Kind {
	switch eventType {
	case EventTypeCheckoutSessionCompleted:
		return KindCheckoutSessionCompleted
	default:
		return KindUnhandled
	}
}

// Event is a webhook delivery whose signature has been verified.
type Event struct {
	ID   string
	Type string
	Kind Kind
	// Object is the raw JSON of data.object, decoded per kind.
	Object json.RawMessage
}

func NewEvent(id, eventType string, object json.RawMessage) Event {
	return Event{
		ID:     id,
		Type:   eventType,
		Kind:   ParseKind(eventType),
		Object: object,
	}
}
