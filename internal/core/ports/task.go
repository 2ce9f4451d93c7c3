package ports

import (
	"context"
	"time"

	"delegate/internal/core/domain"
)

type TaskRepository interface {
	// ListByOrganisation returns the organisation's full task snapshot in
	// one read; aggregation must not mix snapshots of different ages.
	ListByOrganisation(ctx context.Context, orgID uint64) ([]domain.Task, error)
	GetByID(ctx context.Context, orgID, taskID uint64) (domain.Task, error)
	Insert(ctx context.Context, task domain.Task) (uint64, error)
	Update(ctx context.Context, task domain.Task) error
	CancelAll(ctx context.Context, taskIDs []uint64, updatedAt time.Time) error
	HardDelete(ctx context.Context, orgID, taskID uint64) error
}

type TaskNoteRepository interface {
	Insert(ctx context.Context, note domain.TaskNote) error
}

type TaskService interface {
	ListTasks(ctx context.Context, orgID, actorID uint64) ([]domain.TaskView, error)
	GetTask(ctx context.Context, orgID, actorID, taskID uint64) (domain.TaskView, error)
	CreateTask(ctx context.Context, actorID uint64, input domain.CreateTaskInput) (domain.TaskView, error)
	CreateSubtask(ctx context.Context, actorID, parentTaskID uint64, input domain.CreateTaskInput) (domain.TaskView, error)
	Accept(ctx context.Context, orgID, actorID, taskID uint64, committedDeadline *time.Time) (domain.TaskView, error)
	Reject(ctx context.Context, orgID, actorID, taskID uint64, reason string) (domain.TaskView, error)
	Complete(ctx context.Context, orgID, actorID, taskID uint64) (domain.TaskView, error)
	EditDeadline(ctx context.Context, orgID, actorID, taskID uint64, newDeadline time.Time) (domain.TaskView, error)
	EditPersons(ctx context.Context, orgID, actorID, taskID, newAssigneeID uint64) (domain.TaskView, error)
	Delete(ctx context.Context, orgID, actorID, taskID uint64) error
}
