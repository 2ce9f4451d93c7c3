package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"delegate/internal/core/domain"
	"delegate/internal/core/ports"
)

// TaskService orchestrates one read-decide-write cycle per command: load a
// consistent snapshot, let the domain engine decide, persist the proposed
// state, then record audit and notification as best-effort side channels.
type TaskService struct {
	tasks    ports.TaskRepository
	orgUsers ports.OrgUserRepository
	notes    ports.TaskNoteRepository
	audit    ports.AuditRepository
	notifier ports.Notifier
	now      func() time.Time
}

func NewTaskService(
	tasks ports.TaskRepository,
	orgUsers ports.OrgUserRepository,
	notes ports.TaskNoteRepository,
	audit ports.AuditRepository,
	notifier ports.Notifier,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		orgUsers: orgUsers,
		notes:    notes,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, orgID, actorID uint64) ([]domain.TaskView, error) {
	snapshot, err := s.tasks.ListByOrganisation(ctx, orgID)
	if err != nil {
		return nil, err
	}

	idx := domain.NewTaskIndex(snapshot)
	now := s.now()
	views := make([]domain.TaskView, 0, len(snapshot))
	for _, t := range snapshot {
		if t.ParentTaskID != nil || t.Status == domain.TaskStatusCancelled {
			continue
		}
		view, err := idx.Enrich(t, actorID, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *TaskService) GetTask(ctx context.Context, orgID, actorID, taskID uint64) (domain.TaskView, error) {
	snapshot, err := s.tasks.ListByOrganisation(ctx, orgID)
	if err != nil {
		return domain.TaskView{}, err
	}

	idx := domain.NewTaskIndex(snapshot)
	t, ok := idx.Get(taskID)
	if !ok {
		return domain.TaskView{}, domain.ErrTaskNotFound
	}
	return idx.Enrich(t, actorID, s.now())
}

func (s *TaskService) CreateTask(ctx context.Context, actorID uint64, input domain.CreateTaskInput) (domain.TaskView, error) {
	creator, assignee, err := s.resolveParticipants(ctx, input.OrganisationID, actorID, input.AssignedTo.ID)
	if err != nil {
		return domain.TaskView{}, err
	}
	input.AssignedTo = assignee

	task := domain.NewTask(input, creator, s.now())
	task.ID, err = s.tasks.Insert(ctx, task)
	if err != nil {
		return domain.TaskView{}, err
	}

	s.recordAction(ctx, task, actorID, domain.ActionCreateTask)
	return s.GetTask(ctx, task.OrganisationID, actorID, task.ID)
}

func (s *TaskService) CreateSubtask(ctx context.Context, actorID, parentTaskID uint64, input domain.CreateTaskInput) (domain.TaskView, error) {
	parent, err := s.tasks.GetByID(ctx, input.OrganisationID, parentTaskID)
	if err != nil {
		return domain.TaskView{}, err
	}
	if !domain.ActionAllowed(parent, actorID, domain.ActionCreateSubtask) {
		return domain.TaskView{}, domain.ErrActionNotAllowed
	}

	creator, assignee, err := s.resolveParticipants(ctx, parent.OrganisationID, actorID, input.AssignedTo.ID)
	if err != nil {
		return domain.TaskView{}, err
	}
	input.AssignedTo = assignee

	subtask, err := domain.NewSubtask(parent, creator, input, s.now())
	if err != nil {
		return domain.TaskView{}, err
	}
	subtask.ID, err = s.tasks.Insert(ctx, subtask)
	if err != nil {
		return domain.TaskView{}, err
	}

	s.recordAction(ctx, subtask, actorID, domain.ActionCreateSubtask)
	return s.GetTask(ctx, subtask.OrganisationID, actorID, subtask.ID)
}

func (s *TaskService) Accept(ctx context.Context, orgID, actorID, taskID uint64, committedDeadline *time.Time) (domain.TaskView, error) {
	return s.transition(ctx, orgID, actorID, taskID, domain.ActionAccept, func(t domain.Task) (domain.Task, error) {
		return domain.Accept(t, actorID, committedDeadline, s.now())
	})
}

func (s *TaskService) Reject(ctx context.Context, orgID, actorID, taskID uint64, reason string) (domain.TaskView, error) {
	view, err := s.transition(ctx, orgID, actorID, taskID, domain.ActionReject, func(t domain.Task) (domain.Task, error) {
		return domain.Reject(t, actorID, s.now())
	})
	if err != nil {
		return domain.TaskView{}, err
	}

	if reason != "" {
		note := domain.TaskNote{
			TaskID:    taskID,
			AuthorID:  actorID,
			Body:      reason,
			CreatedAt: s.now(),
		}
		if err := s.notes.Insert(ctx, note); err != nil {
			zap.L().Warn("failed to record rejection reason",
				zap.Uint64("task_id", taskID), zap.Error(err))
		}
	}
	return view, nil
}

func (s *TaskService) Complete(ctx context.Context, orgID, actorID, taskID uint64) (domain.TaskView, error) {
	return s.transition(ctx, orgID, actorID, taskID, domain.ActionComplete, func(t domain.Task) (domain.Task, error) {
		return domain.Complete(t, actorID, s.now())
	})
}

func (s *TaskService) EditDeadline(ctx context.Context, orgID, actorID, taskID uint64, newDeadline time.Time) (domain.TaskView, error) {
	return s.transition(ctx, orgID, actorID, taskID, domain.ActionEditDeadline, func(t domain.Task) (domain.Task, error) {
		return domain.EditDeadline(t, actorID, newDeadline, s.now())
	})
}

func (s *TaskService) EditPersons(ctx context.Context, orgID, actorID, taskID, newAssigneeID uint64) (domain.TaskView, error) {
	assignee, err := s.orgUsers.GetByID(ctx, orgID, newAssigneeID)
	if err != nil {
		return domain.TaskView{}, err
	}
	return s.transition(ctx, orgID, actorID, taskID, domain.ActionEditPersons, func(t domain.Task) (domain.Task, error) {
		return domain.EditPersons(t, actorID, assignee.Ref(), s.now())
	})
}

// Delete permanently removes a completed task, and cancels an active one
// together with its whole active subtree. The cascade persists one status
// update per node; re-running it against a partially cancelled tree only
// touches the nodes still active.
func (s *TaskService) Delete(ctx context.Context, orgID, actorID, taskID uint64) error {
	snapshot, err := s.tasks.ListByOrganisation(ctx, orgID)
	if err != nil {
		return err
	}
	idx := domain.NewTaskIndex(snapshot)
	t, ok := idx.Get(taskID)
	if !ok {
		return domain.ErrTaskNotFound
	}
	if !domain.ActionAllowed(t, actorID, domain.ActionDelete) {
		return domain.ErrActionNotAllowed
	}

	if t.Status == domain.TaskStatusCompleted {
		if err := s.tasks.HardDelete(ctx, orgID, taskID); err != nil {
			return err
		}
		s.recordAction(ctx, t, actorID, domain.ActionDelete)
		return nil
	}

	now := s.now()
	cancelled, err := domain.CascadeCancel(t, actorID, idx, now)
	if err != nil {
		return err
	}
	ids := make([]uint64, 0, len(cancelled))
	for _, c := range cancelled {
		ids = append(ids, c.ID)
	}
	if err := s.tasks.CancelAll(ctx, ids, now); err != nil {
		return err
	}

	s.recordAction(ctx, t, actorID, domain.ActionDelete)
	return nil
}

func (s *TaskService) transition(
	ctx context.Context,
	orgID, actorID, taskID uint64,
	action domain.ActionType,
	apply func(domain.Task) (domain.Task, error),
) (domain.TaskView, error) {
	t, err := s.tasks.GetByID(ctx, orgID, taskID)
	if err != nil {
		return domain.TaskView{}, err
	}

	updated, err := apply(t)
	if err != nil {
		return domain.TaskView{}, err
	}
	if err := s.tasks.Update(ctx, updated); err != nil {
		return domain.TaskView{}, err
	}

	s.recordAction(ctx, updated, actorID, action)
	return s.GetTask(ctx, orgID, actorID, taskID)
}

func (s *TaskService) resolveParticipants(ctx context.Context, orgID, actorID, assigneeID uint64) (domain.UserRef, domain.UserRef, error) {
	creator, err := s.orgUsers.GetByID(ctx, orgID, actorID)
	if err != nil {
		return domain.UserRef{}, domain.UserRef{}, err
	}
	if assigneeID == actorID {
		return creator.Ref(), creator.Ref(), nil
	}
	assignee, err := s.orgUsers.GetByID(ctx, orgID, assigneeID)
	if err != nil {
		return domain.UserRef{}, domain.UserRef{}, err
	}
	return creator.Ref(), assignee.Ref(), nil
}

// recordAction writes the audit trail and notifies the counterparty. Both
// are side channels: a failure is logged and never fails the command.
func (s *TaskService) recordAction(ctx context.Context, t domain.Task, actorID uint64, action domain.ActionType) {
	event := ports.AuditEvent{
		ID:             uuid.NewString(),
		OrganisationID: t.OrganisationID,
		TaskID:         t.ID,
		ActorID:        actorID,
		Action:         action,
		OccurredAt:     s.now(),
	}
	if err := s.audit.Append(ctx, event); err != nil {
		zap.L().Warn("failed to append audit event",
			zap.Uint64("task_id", t.ID), zap.String("action", string(action)), zap.Error(err))
	}

	recipient := t.AssignedTo.ID
	if recipient == actorID {
		recipient = t.CreatedBy.ID
	}
	if recipient == actorID {
		return
	}
	notification := ports.Notification{
		OrganisationID: t.OrganisationID,
		RecipientID:    recipient,
		TaskID:         t.ID,
		TaskTitle:      t.Title,
		Action:         action,
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		zap.L().Warn("notification delivery failed",
			zap.Uint64("task_id", t.ID), zap.Uint64("recipient_id", recipient), zap.Error(err))
	}
}

var _ ports.TaskService = (*TaskService)(nil)
