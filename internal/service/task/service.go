package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
	"github.com/medipresence/presence-api/internal/service/audit"
	apperrors "github.com/medipresence/presence-api/pkg/errors"
	"github.com/medipresence/presence-api/pkg/messaging"
)

// TaskService creates and lists staff work items.
type TaskService interface {
	Create(ctx context.Context, user *model.User, req *model.CreateTaskRequest, ipAddress string) (*model.Task, error)
	List(ctx context.Context, user *model.User) ([]*model.Task, error)
}

type Service struct {
	repo      repository.TaskRepository
	userRepo  repository.UserRepository
	publisher messaging.Publisher
	auditor   *audit.Service
}

func NewService(repo repository.TaskRepository, userRepo repository.UserRepository, publisher messaging.Publisher, auditor *audit.Service) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		publisher: publisher,
		auditor:   auditor,
	}
}

func (s *Service) Create(ctx context.Context, user *model.User, req *model.CreateTaskRequest, ipAddress string) (*model.Task, error) {
	if _, err := s.userRepo.Get(ctx, req.AssignedTo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("assigned user")
		}
		return nil, fmt.Errorf("failed to check assignee: %w", err)
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  user.ID,
		Priority:    req.Priority,
		Status:      model.TaskPending,
		Deadline:    req.Deadline,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.auditor.Log(user.ID, "task_created",
		fmt.Sprintf("Task '%s' assigned to %s", task.Title, task.AssignedTo), ipAddress)

	if err := s.publisher.Publish(ctx, messaging.Event{
		Type: messaging.EventNewTask,
		Data: map[string]interface{}{
			"task_id":     task.ID,
			"title":       task.Title,
			"assigned_to": task.AssignedTo,
			"priority":    task.Priority,
		},
	}); err != nil {
		log.Warn().Err(err).Str("task_id", task.ID.String()).Msg("failed to publish new task event")
	}

	return task, nil
}

// List returns every task for admins and only the caller's assignments
// for everyone else.
func (s *Service) List(ctx context.Context, user *model.User) ([]*model.Task, error) {
	var (
		tasks []*model.Task
		err   error
	)
	if user.Role == model.RoleAdmin {
		tasks, err = s.repo.List(ctx)
	} else {
		tasks, err = s.repo.ListByAssignee(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
