package service

import (
	"mindwell-backend/utilities"
)

// Notifier is the delivery contract for schema-change notifications. Delivery
// is fire-and-forget: a failed notification never affects the mutation that
// triggered it.
type Notifier interface {
	NotifySchemaChange(event string, payload utilities.SchemaMutationPayload)
}

// LogNotifier is the default delivery channel; a real deployment swaps in the
// platform's notification service behind the same interface.
type LogNotifier struct{}

func (LogNotifier) NotifySchemaChange(event string, payload utilities.SchemaMutationPayload) {
	utilities.Info("notification: %s (type=%d question=%d)", event, payload.AssessmentTypeID, payload.QuestionID)
}

// SubscribeNotifier attaches the notifier to every schema mutation event.
func SubscribeNotifier(bus *utilities.EventBus, n Notifier) {
	events := []string{
		utilities.EventTypeCreated,
		utilities.EventTypeUpdated,
		utilities.EventTypeDeleted,
		utilities.EventQuestionCreated,
		utilities.EventQuestionUpdated,
		utilities.EventQuestionDeleted,
	}
	for _, event := range events {
		event := event
		bus.Subscribe(event, func(data interface{}) {
			if payload, ok := data.(utilities.SchemaMutationPayload); ok {
				n.NotifySchemaChange(event, payload)
			}
		})
	}
}
