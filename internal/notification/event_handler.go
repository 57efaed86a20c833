package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opencivic/civic-reporter/internal/core/events"
)

// EventHandler bridges the in-process event bus to the webhook dispatcher.
type EventHandler struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewEventHandler(dispatcher *Dispatcher, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *EventHandler) HandleIssueSubmitted(ctx context.Context, event events.Event) error {
	submitted, ok := event.(*events.IssueSubmittedEvent)
	if !ok {
		return fmt.Errorf("expected IssueSubmittedEvent, got %T", event)
	}

	h.logger.Info("issue submitted",
		"issue_id", submitted.IssueID,
		"user_id", submitted.UserID,
		"category", submitted.Category,
		"event_id", submitted.EventID())

	return nil
}

func (h *EventHandler) HandleIssueStatusChanged(ctx context.Context, event events.Event) error {
	changed, ok := event.(*events.IssueStatusChangedEvent)
	if !ok {
		return fmt.Errorf("expected IssueStatusChangedEvent, got %T", event)
	}

	if !h.dispatcher.Enabled() {
		h.logger.Info("issue status changed",
			"issue_id", changed.IssueID,
			"old_status", changed.OldStatus,
			"new_status", changed.NewStatus,
			"event_id", changed.EventID())
		return nil
	}

	h.dispatcher.Enqueue(Notification{
		EventID:   changed.EventID(),
		EventType: changed.EventType(),
		Timestamp: changed.OccurredAt(),
		Data: map[string]interface{}{
			"issue_id":            changed.IssueID,
			"old_status":          changed.OldStatus,
			"new_status":          changed.NewStatus,
			"assigned_department": changed.AssignedDepartment,
		},
	})

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeIssueSubmitted, h.HandleIssueSubmitted)
	eventBus.Subscribe(events.EventTypeIssueStatusChanged, h.HandleIssueStatusChanged)

	h.logger.Info("notification event handlers registered",
		"handlers", []string{events.EventTypeIssueSubmitted, events.EventTypeIssueStatusChanged})
}
