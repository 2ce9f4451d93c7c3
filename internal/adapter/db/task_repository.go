package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"delegate/internal/core/domain"
	"delegate/internal/core/ports"
)

const listTasksQuery = `
SELECT
  t.*,
  owner.name    AS owner_name,
  assignee.name AS assignee_name
FROM tasks t
LEFT JOIN org_users owner    ON owner.id = t.created_by
LEFT JOIN org_users assignee ON assignee.id = t.assigned_to
WHERE t.organisation_id = ?
ORDER BY t.id;
`

const getTaskQuery = `
SELECT
  t.*,
  owner.name    AS owner_name,
  assignee.name AS assignee_name
FROM tasks t
LEFT JOIN org_users owner    ON owner.id = t.created_by
LEFT JOIN org_users assignee ON assignee.id = t.assigned_to
WHERE t.organisation_id = ? AND t.id = ?;
`

const insertTaskQuery = `
INSERT INTO tasks
  (organisation_id, title, description, created_by, assigned_to, parent_task_id,
   status, deadline, committed_deadline, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const updateTaskQuery = `
UPDATE tasks
SET status = ?, assigned_to = ?, deadline = ?, committed_deadline = ?, updated_at = ?
WHERE organisation_id = ? AND id = ?;
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID                uint64         `db:"id"`
	OrganisationID    uint64         `db:"organisation_id"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	CreatedBy         uint64         `db:"created_by"`
	AssignedTo        uint64         `db:"assigned_to"`
	ParentTaskID      sql.NullInt64  `db:"parent_task_id"`
	Status            string         `db:"status"`
	Deadline          sql.NullTime   `db:"deadline"`
	CommittedDeadline sql.NullTime   `db:"committed_deadline"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	OwnerName         sql.NullString `db:"owner_name"`
	AssigneeName      sql.NullString `db:"assignee_name"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByOrganisation(ctx context.Context, orgID uint64) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery, orgID); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, orgID, taskID uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, orgID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) (uint64, error) {
	result, err := r.db.ExecContext(ctx, insertTaskQuery,
		task.OrganisationID,
		task.Title,
		nullableString(task.Description),
		task.CreatedBy.ID,
		task.AssignedTo.ID,
		nullableID(task.ParentTaskID),
		string(task.Status),
		nullableTime(task.Deadline),
		nullableTime(task.CommittedDeadline),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	result, err := r.db.ExecContext(ctx, updateTaskQuery,
		string(task.Status),
		task.AssignedTo.ID,
		nullableTime(task.Deadline),
		nullableTime(task.CommittedDeadline),
		task.UpdatedAt,
		task.OrganisationID,
		task.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// CancelAll flips every listed task to cancelled in one statement. Rows that
// disappeared since the snapshot simply do not match, which keeps a resumed
// cascade safe.
func (r *TaskRepository) CancelAll(ctx context.Context, taskIDs []uint64, updatedAt time.Time) error {
	if len(taskIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		"UPDATE tasks SET status = ?, updated_at = ? WHERE id IN (?);",
		string(domain.TaskStatusCancelled), updatedAt, taskIDs,
	)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	return err
}

func (r *TaskRepository) HardDelete(ctx context.Context, orgID, taskID uint64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE organisation_id = ? AND id = ?;", orgID, taskID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:             row.ID,
		OrganisationID: row.OrganisationID,
		Title:          row.Title,
		CreatedBy:      domain.UserRef{ID: row.CreatedBy},
		AssignedTo:     domain.UserRef{ID: row.AssignedTo},
		Status:         domain.TaskStatus(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.OwnerName.Valid {
		value := row.OwnerName.String
		task.CreatedBy.Name = &value
	}

	if row.AssigneeName.Valid {
		value := row.AssigneeName.String
		task.AssignedTo.Name = &value
	}

	if row.ParentTaskID.Valid {
		value := uint64(row.ParentTaskID.Int64)
		task.ParentTaskID = &value
	}

	if row.Deadline.Valid {
		value := row.Deadline.Time
		task.Deadline = &value
	}

	if row.CommittedDeadline.Valid {
		value := row.CommittedDeadline.Time
		task.CommittedDeadline = &value
	}

	return task
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullableTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}

func nullableID(value *uint64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
