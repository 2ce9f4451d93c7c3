package domain

import (
	"sort"
	"time"
)

// TaskIndex is a read-only view over one organisation's task snapshot,
// indexed for the recursive subtree computations. Build it once per request
// from a single consistent snapshot; mixing snapshots of different ages
// across calls produces wrong participant counts.
type TaskIndex struct {
	byID     map[uint64]Task
	children map[uint64][]Task
}

func NewTaskIndex(tasks []Task) *TaskIndex {
	idx := &TaskIndex{
		byID:     make(map[uint64]Task, len(tasks)),
		children: make(map[uint64][]Task, len(tasks)),
	}
	for _, t := range tasks {
		idx.byID[t.ID] = t
		if t.ParentTaskID != nil {
			idx.children[*t.ParentTaskID] = append(idx.children[*t.ParentTaskID], t)
		}
	}
	// Traversal order must not depend on snapshot order: newest first,
	// higher id breaking created-at ties.
	for _, siblings := range idx.children {
		sort.Slice(siblings, func(i, j int) bool {
			if !siblings[i].CreatedAt.Equal(siblings[j].CreatedAt) {
				return siblings[i].CreatedAt.After(siblings[j].CreatedAt)
			}
			return siblings[i].ID > siblings[j].ID
		})
	}
	return idx
}

func (x *TaskIndex) Get(id uint64) (Task, bool) {
	t, ok := x.byID[id]
	return t, ok
}

// ActiveSubtasksOf returns the direct children of a task that are still
// active, newest first.
func (x *TaskIndex) ActiveSubtasksOf(id uint64) []Task {
	var active []Task
	for _, child := range x.children[id] {
		if child.IsActive() {
			active = append(active, child)
		}
	}
	return active
}

// ParticipantCount counts the distinct users owning or assigned to the task
// or any active descendant subtask. A parent cycle in the stored data aborts
// with ErrTaskHierarchyCycle rather than recursing forever.
func (x *TaskIndex) ParticipantCount(t Task) (int, error) {
	participants := make(map[uint64]struct{})
	visited := make(map[uint64]struct{})
	if err := x.collectParticipants(t, participants, visited); err != nil {
		return 0, err
	}
	return len(participants), nil
}

func (x *TaskIndex) collectParticipants(t Task, participants, visited map[uint64]struct{}) error {
	if _, seen := visited[t.ID]; seen {
		return ErrTaskHierarchyCycle
	}
	visited[t.ID] = struct{}{}

	participants[t.CreatedBy.ID] = struct{}{}
	participants[t.AssignedTo.ID] = struct{}{}

	for _, child := range x.ActiveSubtasksOf(t.ID) {
		if err := x.collectParticipants(child, participants, visited); err != nil {
			return err
		}
	}
	return nil
}

// LastActiveParticipant is the assignee of the most recently created active
// subtask anywhere under the task, or the task's own assignee when it has no
// active subtasks. Created-at ties break on the higher task id.
func (x *TaskIndex) LastActiveParticipant(t Task) (UserRef, error) {
	visited := map[uint64]struct{}{t.ID: {}}
	descendants, err := x.collectActiveDescendants(t.ID, visited)
	if err != nil {
		return UserRef{}, err
	}
	if len(descendants) == 0 {
		return t.AssignedTo, nil
	}

	latest := descendants[0]
	for _, d := range descendants[1:] {
		if d.CreatedAt.After(latest.CreatedAt) ||
			(d.CreatedAt.Equal(latest.CreatedAt) && d.ID > latest.ID) {
			latest = d
		}
	}
	return latest.AssignedTo, nil
}

func (x *TaskIndex) collectActiveDescendants(id uint64, visited map[uint64]struct{}) ([]Task, error) {
	var out []Task
	for _, child := range x.ActiveSubtasksOf(id) {
		if _, seen := visited[child.ID]; seen {
			return nil, ErrTaskHierarchyCycle
		}
		visited[child.ID] = struct{}{}
		out = append(out, child)

		deeper, err := x.collectActiveDescendants(child.ID, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, deeper...)
	}
	return out, nil
}

// PendingInfo locates the acceptance step currently blocking the task. The
// root task's own unaccepted state always wins over anything in its subtree;
// only then is the subtree searched depth-first, newest sibling first, for
// the first unaccepted non-todo subtask. A subtask that is itself pending is
// not descended into: its own subtree is blocked behind it.
func (x *TaskIndex) PendingInfo(t Task, actorID uint64) (PendingInfo, error) {
	if t.IsTodo() {
		return PendingInfo{}, nil
	}

	if t.IsActive() && t.Status == TaskStatusPending && t.CommittedDeadline == nil {
		return pendingFrom(t.AssignedTo, actorID), nil
	}

	visited := map[uint64]struct{}{t.ID: {}}
	pending, err := x.findPendingSubtask(t.ID, visited)
	if err != nil {
		return PendingInfo{}, err
	}
	if pending == nil {
		return PendingInfo{}, nil
	}
	return pendingFrom(pending.AssignedTo, actorID), nil
}

func (x *TaskIndex) findPendingSubtask(id uint64, visited map[uint64]struct{}) (*Task, error) {
	for _, child := range x.ActiveSubtasksOf(id) {
		if _, seen := visited[child.ID]; seen {
			return nil, ErrTaskHierarchyCycle
		}
		visited[child.ID] = struct{}{}

		if child.Status == TaskStatusPending && child.CommittedDeadline == nil && !child.IsTodo() {
			found := child
			return &found, nil
		}

		found, err := x.findPendingSubtask(child.ID, visited)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

func pendingFrom(assignee UserRef, actorID uint64) PendingInfo {
	ref := assignee
	return PendingInfo{
		IsPending:       true,
		IsPendingFromMe: assignee.ID == actorID,
		PendingFrom:     &ref,
	}
}

// Enrich computes the full read model for one task against the snapshot:
// derived overdue flag, subtree aggregates and the actor's action menu.
func (x *TaskIndex) Enrich(t Task, actorID uint64, now time.Time) (TaskView, error) {
	count, err := x.ParticipantCount(t)
	if err != nil {
		return TaskView{}, err
	}
	lastActive, err := x.LastActiveParticipant(t)
	if err != nil {
		return TaskView{}, err
	}
	pending, err := x.PendingInfo(t, actorID)
	if err != nil {
		return TaskView{}, err
	}

	return TaskView{
		Task:                  t,
		Overdue:               t.IsOverdue(now),
		ParticipantCount:      count,
		LastActiveParticipant: lastActive,
		Pending:               pending,
		AvailableActions:      AvailableActions(t, actorID),
	}, nil
}
