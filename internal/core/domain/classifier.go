package domain

import "time"

// IsTodo reports whether the task is self-assigned: its creator and assignee
// are the same person. To-dos have no acceptance step.
func (t Task) IsTodo() bool {
	return t.CreatedBy.ID == t.AssignedTo.ID
}

// IsActive reports whether the task still counts for aggregation and action
// menus. Rejected tasks stay visible; completed and cancelled ones do not.
func (t Task) IsActive() bool {
	return t.Status != TaskStatusCompleted && t.Status != TaskStatusCancelled
}

// EffectiveDeadline is the committed deadline when the assignee has agreed
// to one, otherwise the proposed deadline. Nil when neither is set.
func (t Task) EffectiveDeadline() *time.Time {
	if t.CommittedDeadline != nil {
		return t.CommittedDeadline
	}
	return t.Deadline
}

// IsOverdue derives overdueness at read time. The stored overdue status is
// honoured for legacy rows but never required.
func (t Task) IsOverdue(now time.Time) bool {
	if !t.IsActive() {
		return false
	}
	if t.Status == TaskStatusOverdue {
		return true
	}
	deadline := t.EffectiveDeadline()
	return deadline != nil && deadline.Before(now)
}

// IsAccepted reports whether the assignee has committed to the task. A set
// committed deadline signals acceptance even on legacy rows whose status was
// flipped to overdue.
func (t Task) IsAccepted() bool {
	return t.Status == TaskStatusAccepted || t.CommittedDeadline != nil
}

// IsPendingAcceptance reports whether the task is blocked on the assignee's
// accept/reject decision.
func (t Task) IsPendingAcceptance() bool {
	return t.Status == TaskStatusPending && !t.IsTodo()
}

func (t Task) IsOwner(userID uint64) bool {
	return t.CreatedBy.ID == userID
}

func (t Task) IsAssignee(userID uint64) bool {
	return t.AssignedTo.ID == userID
}
