package domain

import "time"

// Transition validators. Each one checks the actor and the source state,
// then returns a modified copy of the task as the proposed new persisted
// state. The snapshot itself is never mutated; persisting the result is the
// caller's job.
//
// The legal machine is:
//
//	pending  -> accepted | rejected | cancelled
//	accepted -> completed | cancelled
//	rejected, completed, cancelled -> (terminal)
//
// Overdue is not a machine state: it is derived by the classifier and never
// produced by a transition.

// Accept commits the assignee to a deadline. Legal only from pending, only
// for the assignee, and the deadline must be given explicitly, never
// defaulted.
func Accept(t Task, actorID uint64, committedDeadline *time.Time, now time.Time) (Task, error) {
	if !t.IsAssignee(actorID) {
		return Task{}, ErrActionNotAllowed
	}
	if t.Status != TaskStatusPending {
		return Task{}, ErrInvalidTransition
	}
	if committedDeadline == nil {
		return Task{}, ErrDeadlineRequired
	}

	t.Status = TaskStatusAccepted
	t.CommittedDeadline = committedDeadline
	t.UpdatedAt = now
	return t, nil
}

// Reject declines a pending task. The rejection reason travels separately as
// a task note; it is not part of the task row.
func Reject(t Task, actorID uint64, now time.Time) (Task, error) {
	if !t.IsAssignee(actorID) {
		return Task{}, ErrActionNotAllowed
	}
	if t.Status != TaskStatusPending {
		return Task{}, ErrInvalidTransition
	}

	t.Status = TaskStatusRejected
	t.UpdatedAt = now
	return t, nil
}

// Complete closes the task. For a to-do the sole owner/assignee completes it;
// otherwise only the owner may, and not while the task is still waiting for
// the assignee's accept/reject decision.
func Complete(t Task, actorID uint64, now time.Time) (Task, error) {
	if !t.IsOwner(actorID) {
		return Task{}, ErrActionNotAllowed
	}
	if !t.IsActive() || t.IsPendingAcceptance() {
		return Task{}, ErrInvalidTransition
	}

	t.Status = TaskStatusCompleted
	t.UpdatedAt = now
	return t, nil
}

// EditDeadline moves the proposed deadline. A committed deadline follows the
// new value; an uncommitted task stays uncommitted, moving a deadline does
// not imply acceptance.
func EditDeadline(t Task, actorID uint64, newDeadline time.Time, now time.Time) (Task, error) {
	if !t.IsOwner(actorID) && !t.IsAssignee(actorID) {
		return Task{}, ErrActionNotAllowed
	}
	if !t.IsActive() {
		return Task{}, ErrInvalidTransition
	}

	deadline := newDeadline
	t.Deadline = &deadline
	if t.CommittedDeadline != nil {
		committed := newDeadline
		t.CommittedDeadline = &committed
	}
	t.UpdatedAt = now
	return t, nil
}

// EditPersons reassigns the task. Reassigning to the owner converts it into
// a to-do, already accepted, adopting the proposed deadline as the
// commitment when none existed. Reassigning to a new person restarts
// acceptance from scratch. Reassigning to the current assignee changes
// nothing but the reference.
func EditPersons(t Task, actorID uint64, newAssignee UserRef, now time.Time) (Task, error) {
	if !t.IsOwner(actorID) {
		return Task{}, ErrActionNotAllowed
	}
	if !t.IsActive() {
		return Task{}, ErrInvalidTransition
	}

	switch {
	case newAssignee.ID == t.CreatedBy.ID:
		t.AssignedTo = newAssignee
		t.Status = TaskStatusAccepted
		if t.CommittedDeadline == nil {
			t.CommittedDeadline = t.Deadline
		}
	case newAssignee.ID != t.AssignedTo.ID:
		t.AssignedTo = newAssignee
		t.Status = TaskStatusPending
		t.CommittedDeadline = nil
	default:
		t.AssignedTo = newAssignee
	}
	t.UpdatedAt = now
	return t, nil
}

// CascadeCancel cancels the task and every currently-active descendant
// subtask, deepest nodes included. The result lists the cancelled copies,
// descendants first, each subtree node visited exactly once. Already
// terminal nodes are skipped, so re-running the cascade over a partially
// cancelled tree is safe and a full no-op once everything is terminal.
func CascadeCancel(t Task, actorID uint64, idx *TaskIndex, now time.Time) ([]Task, error) {
	if !t.IsOwner(actorID) {
		return nil, ErrActionNotAllowed
	}
	if !t.IsActive() {
		return nil, nil
	}

	visited := make(map[uint64]struct{})
	return cancelSubtree(t, idx, visited, now)
}

func cancelSubtree(t Task, idx *TaskIndex, visited map[uint64]struct{}, now time.Time) ([]Task, error) {
	if _, seen := visited[t.ID]; seen {
		return nil, ErrTaskHierarchyCycle
	}
	visited[t.ID] = struct{}{}

	var cancelled []Task
	for _, child := range idx.ActiveSubtasksOf(t.ID) {
		deeper, err := cancelSubtree(child, idx, visited, now)
		if err != nil {
			return nil, err
		}
		cancelled = append(cancelled, deeper...)
	}

	t.Status = TaskStatusCancelled
	t.UpdatedAt = now
	return append(cancelled, t), nil
}

// NewSubtask builds a dependency subtask under a parent, in the parent's
// organisation, following the normal creation rule for its initial state.
func NewSubtask(parent Task, actor UserRef, input CreateTaskInput, now time.Time) (Task, error) {
	if !parent.IsActive() {
		return Task{}, ErrInvalidTransition
	}
	if input.OrganisationID != 0 && input.OrganisationID != parent.OrganisationID {
		return Task{}, ErrOrganisationMismatch
	}

	input.OrganisationID = parent.OrganisationID
	parentID := parent.ID
	input.ParentTaskID = &parentID
	return NewTask(input, actor, now), nil
}
