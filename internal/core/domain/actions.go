package domain

type ActionType string

const (
	ActionAccept        ActionType = "accept"
	ActionReject        ActionType = "reject"
	ActionComplete      ActionType = "complete"
	ActionEditDeadline  ActionType = "edit_deadline"
	ActionEditPersons   ActionType = "edit_persons"
	ActionCreateSubtask ActionType = "create_subtask"
	ActionDelete        ActionType = "delete"
	// ActionCreateTask never appears in a menu; it labels root-task
	// creation in the audit trail.
	ActionCreateTask ActionType = "create_task"
)

// Action is one entry of an actor's menu for a task.
type Action struct {
	Type        ActionType
	Label       string
	Description string
}

var actionCatalog = map[ActionType]Action{
	ActionAccept:        {ActionAccept, "Accept", "Commit to a deadline and take on the task"},
	ActionReject:        {ActionReject, "Reject", "Decline the task with a reason"},
	ActionComplete:      {ActionComplete, "Mark complete", "Close the task as done"},
	ActionEditDeadline:  {ActionEditDeadline, "Edit deadline", "Move the due date"},
	ActionEditPersons:   {ActionEditPersons, "Reassign", "Hand the task to someone else"},
	ActionCreateSubtask: {ActionCreateSubtask, "Add subtask", "Delegate a dependency of this task"},
	ActionDelete:        {ActionDelete, "Delete", "Cancel the task and its active subtasks"},
}

func actions(types ...ActionType) []Action {
	out := make([]Action, 0, len(types))
	for _, at := range types {
		out = append(out, actionCatalog[at])
	}
	return out
}

// AvailableActions returns the ordered menu the actor may legally invoke on
// the task. The service layer re-validates every command against this same
// matrix, so a bypassed client gains nothing.
func AvailableActions(t Task, actorID uint64) []Action {
	if t.Status == TaskStatusCancelled {
		return nil
	}

	if t.Status == TaskStatusCompleted {
		if t.IsOwner(actorID) {
			return actions(ActionDelete)
		}
		return nil
	}

	if t.IsTodo() {
		if t.IsOwner(actorID) {
			return actions(ActionComplete, ActionEditDeadline, ActionEditPersons, ActionDelete)
		}
		return nil
	}

	switch {
	case t.IsAssignee(actorID) && !t.IsOwner(actorID):
		if t.Status == TaskStatusPending {
			return actions(ActionAccept, ActionReject, ActionCreateSubtask)
		}
		return actions(ActionEditDeadline, ActionCreateSubtask)
	case t.IsOwner(actorID) && !t.IsAssignee(actorID):
		// Owner actions do not depend on the assignee's acceptance state.
		return actions(ActionComplete, ActionEditPersons, ActionDelete)
	default:
		return nil
	}
}

// ActionAllowed reports whether one action type is present in the actor's
// menu for the task.
func ActionAllowed(t Task, actorID uint64, action ActionType) bool {
	for _, a := range AvailableActions(t, actorID) {
		if a.Type == action {
			return true
		}
	}
	return false
}
