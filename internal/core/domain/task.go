package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusAccepted  TaskStatus = "accepted"
	TaskStatusRejected  TaskStatus = "rejected"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
	// TaskStatusOverdue still exists in rows written by an older version.
	// It is never written back: overdueness is derived from the effective
	// deadline on every read.
	TaskStatusOverdue TaskStatus = "overdue"
)

type Task struct {
	ID                uint64
	OrganisationID    uint64
	Title             string
	Description       *string
	CreatedBy         UserRef
	AssignedTo        UserRef
	ParentTaskID      *uint64
	Status            TaskStatus
	Deadline          *time.Time
	CommittedDeadline *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreateTaskInput struct {
	OrganisationID uint64
	Title          string
	Description    *string
	AssignedTo     UserRef
	Deadline       *time.Time
	ParentTaskID   *uint64
}

// NewTask applies the creation rule: a task assigned to its own creator is a
// to-do and starts accepted with the proposed deadline already committed;
// anything else starts pending until the assignee accepts.
func NewTask(input CreateTaskInput, creator UserRef, now time.Time) Task {
	task := Task{
		OrganisationID: input.OrganisationID,
		Title:          input.Title,
		Description:    input.Description,
		CreatedBy:      creator,
		AssignedTo:     input.AssignedTo,
		ParentTaskID:   input.ParentTaskID,
		Status:         TaskStatusPending,
		Deadline:       input.Deadline,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if creator.ID == input.AssignedTo.ID {
		task.Status = TaskStatusAccepted
		task.CommittedDeadline = input.Deadline
	}

	return task
}

// PendingInfo attributes the acceptance step currently blocking a task, if
// any, to the participant who has to act on it.
type PendingInfo struct {
	IsPending       bool
	IsPendingFromMe bool
	PendingFrom     *UserRef
}

// TaskView is the read model served to clients: the task plus display fields
// recomputed from the organisation snapshot on every read.
type TaskView struct {
	Task
	Overdue               bool
	ParticipantCount      int
	LastActiveParticipant UserRef
	Pending               PendingInfo
	AvailableActions      []Action
}

type TaskNote struct {
	ID        uint64
	TaskID    uint64
	AuthorID  uint64
	Body      string
	CreatedAt time.Time
}
