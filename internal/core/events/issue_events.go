package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeIssueSubmitted     = "issue.submitted"
	EventTypeIssueStatusChanged = "issue.status_changed"
)

type IssueSubmittedEvent struct {
	BaseEvent
	IssueID  string `json:"issue_id"`
	UserID   string `json:"user_id"`
	Category string `json:"category"`
	Location string `json:"location"`
}

func NewIssueSubmittedEvent(issueID, userID, category, location string) *IssueSubmittedEvent {
	return &IssueSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"issue_id": issueID,
				"user_id":  userID,
				"category": category,
				"location": location,
			},
		},
		IssueID:  issueID,
		UserID:   userID,
		Category: category,
		Location: location,
	}
}

type IssueStatusChangedEvent struct {
	BaseEvent
	IssueID            string `json:"issue_id"`
	OldStatus          string `json:"old_status"`
	NewStatus          string `json:"new_status"`
	AssignedDepartment string `json:"assigned_department"`
}

func NewIssueStatusChangedEvent(issueID, oldStatus, newStatus, assignedDepartment string) *IssueStatusChangedEvent {
	return &IssueStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"issue_id":            issueID,
				"old_status":          oldStatus,
				"new_status":          newStatus,
				"assigned_department": assignedDepartment,
			},
		},
		IssueID:            issueID,
		OldStatus:          oldStatus,
		NewStatus:          newStatus,
		AssignedDepartment: assignedDepartment,
	}
}
