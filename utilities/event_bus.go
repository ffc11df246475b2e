package utilities

import "sync"

// Event names published by the assessment services after commit. Handlers
// must treat delivery as best effort; a failed handler never affects the
// transaction that triggered it.
const (
	EventQuestionCreated     = "question.created"
	EventQuestionUpdated     = "question.updated"
	EventQuestionDeleted     = "question.deleted"
	EventTypeCreated         = "assessment_type.created"
	EventTypeUpdated         = "assessment_type.updated"
	EventTypeDeleted         = "assessment_type.deleted"
	EventAssessmentCompleted = "assessment.completed"
)

// SchemaMutationPayload accompanies question/type events.
type SchemaMutationPayload struct {
	AssessmentTypeID uint
	QuestionID       uint
}

type EventHandler func(interface{})

type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

// Publish invokes every handler for the event asynchronously.
func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if handlers, found := eb.handlers[event]; found {
		for _, handler := range handlers {
			go handler(data)
		}
	}
}

// Global instance
var GlobalEventBus = NewEventBus()
