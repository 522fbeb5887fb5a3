package ecs

// EventType identifies different types of events
type EventType string

const (
	EventEntityCreated  EventType = "entity_created"
	EventEntityDeleted  EventType = "entity_deleted"
	EventComponentAdded EventType = "component_added"
)

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// EntityCreated is emitted after NewEntity.
type EntityCreated struct {
	Entity Entity
	Name   string
}

func (EntityCreated) Type() EventType { return EventEntityCreated }

// EntityDeleted is emitted after an entity and its components are removed.
type EntityDeleted struct {
	Entity Entity
	Name   string
}

func (EntityDeleted) Type() EventType { return EventEntityDeleted }

// ComponentAdded is emitted after a component has been stored.
type ComponentAdded struct {
	Entity    Entity
	Component ComponentID
	Index     int
}

func (ComponentAdded) Type() EventType { return EventComponentAdded }

// EventHandler is a function that processes events
type EventHandler func(Event)

// SubscriptionID identifies a handler registered with Subscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// EventManager manages event subscriptions and dispatches
type EventManager struct {
	subscribers map[EventType][]subscription
	nextID      SubscriptionID
}

// NewEventManager creates a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) SubscriptionID {
	em.nextID++
	em.subscribers[eventType] = append(em.subscribers[eventType], subscription{id: em.nextID, handler: handler})
	return em.nextID
}

// Unsubscribe removes the handler registered under id. It reports whether a
// handler was removed.
func (em *EventManager) Unsubscribe(id SubscriptionID) bool {
	for eventType, subs := range em.subscribers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			subs = append(subs[:i:i], subs[i+1:]...)
			if len(subs) == 0 {
				delete(em.subscribers, eventType)
			} else {
				em.subscribers[eventType] = subs
			}
			return true
		}
	}
	return false
}

// Emit dispatches an event to all subscribed handlers in subscription order
func (em *EventManager) Emit(event Event) {
	for _, s := range em.subscribers[event.Type()] {
		s.handler(event)
	}
}
