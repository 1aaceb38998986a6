package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
)

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, assigned_to, assigned_by, priority, status, deadline, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.AssignedBy,
		task.Priority,
		task.Status,
		task.Deadline,
		task.CreatedAt,
		task.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	query := `SELECT * FROM tasks ORDER BY created_at DESC`
	var tasks []*model.Task
	err := r.db.SelectContext(ctx, &tasks, query)
	return tasks, err
}

func (r *taskRepository) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*model.Task, error) {
	query := `SELECT * FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC`
	var tasks []*model.Task
	err := r.db.SelectContext(ctx, &tasks, query, userID)
	return tasks, err
}
