package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"delegate/internal/core/domain"
	"delegate/internal/core/ports"
)

const insertTaskNoteQuery = `
INSERT INTO task_notes (task_id, author_id, body, created_at)
VALUES (?, ?, ?, ?);
`

type TaskNoteRepository struct {
	db *sqlx.DB
}

var _ ports.TaskNoteRepository = (*TaskNoteRepository)(nil)

func NewTaskNoteRepository(db *sqlx.DB) *TaskNoteRepository {
	return &TaskNoteRepository{db: db}
}

func (r *TaskNoteRepository) Insert(ctx context.Context, note domain.TaskNote) error {
	_, err := r.db.ExecContext(ctx, insertTaskNoteQuery,
		note.TaskID, note.AuthorID, note.Body, note.CreatedAt)
	return err
}
