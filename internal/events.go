package internal

// Routing keys used when publishing Todo events.
const (
	EventTodoCreated = "todos.event.created"
	EventTodoUpdated = "todos.event.updated"
	EventTodoDeleted = "todos.event.deleted"
)

// Event is the envelope published to JSON based message brokers.
type Event struct {
	ID    string
	Type  string
	Value Todo
}
