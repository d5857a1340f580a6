package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/model"
	"taskhub/internal/policy"
	"taskhub/internal/repository"
)

type TaskService struct {
	tasks    repository.TaskRepositoryInterface
	projects repository.ProjectRepositoryInterface
}

func NewTaskService(
	tasks repository.TaskRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   uuid.UUID
	AssignedTo  *uuid.UUID
	Priority    string // optional, defaults to medium
	DueDate     *time.Time
}

type UpdateTaskInput struct {
	Title       string // empty keeps the current value
	Description string
	Status      string
	Priority    string
	AssignedTo  *uuid.UUID // nil keeps the current assignee
	DueDate     *time.Time
}

// Create persists a task inside a project the caller can view.
func (s *TaskService) Create(ctx context.Context, identity policy.Identity, input CreateTaskInput) (*model.Task, error) {
	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, unavailable(err)
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if !policy.CanCreateTask(identity, project) {
		return nil, ErrForbidden
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidTaskPriority(priority) {
		return nil, ErrInvalidState
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   identity.ID,
		Status:      model.TaskTodo,
		Priority:    priority,
		DueDate:     input.DueDate,
		Version:     1,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, unavailable(err)
	}
	return task, nil
}

// Get returns a task visible to the caller through its project.
func (s *TaskService) Get(ctx context.Context, identity policy.Identity, taskID uuid.UUID) (*model.Task, error) {
	task, project, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewTask(identity, task, project) {
		return nil, ErrForbidden
	}
	return task, nil
}

// ListForUser returns tasks the caller created or is assigned to,
// filtered in the store query.
func (s *TaskService) ListForUser(ctx context.Context, identity policy.Identity) ([]model.Task, error) {
	tasks, err := s.tasks.ListForUser(ctx, identity.ID)
	if err != nil {
		return nil, unavailable(err)
	}
	return tasks, nil
}

// UpdateStatus moves a task to a new status. Only the assignee, the
// creator or an admin may do so; the write is version-guarded.
func (s *TaskService) UpdateStatus(ctx context.Context, identity policy.Identity, taskID uuid.UUID, status string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable(err)
	}

	if !policy.CanMutateTask(identity, task) {
		return nil, ErrForbidden
	}

	if !model.ValidTaskStatus(status) {
		return nil, ErrInvalidState
	}

	task.Status = status
	if err := s.tasks.UpdateVersioned(ctx, task); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, unavailable(err)
	}
	return task, nil
}

// Update edits a task's fields. The same gate applies as for status
// changes: assignee, creator or admin.
func (s *TaskService) Update(ctx context.Context, identity policy.Identity, taskID uuid.UUID, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrNotFound
		}
		return nil, unavailable(err)
	}

	if !policy.CanMutateTask(identity, task) {
		return nil, ErrForbidden
	}

	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Status != "" {
		if !model.ValidTaskStatus(input.Status) {
			return nil, ErrInvalidState
		}
		task.Status = input.Status
	}
	if input.Priority != "" {
		if !model.ValidTaskPriority(input.Priority) {
			return nil, ErrInvalidState
		}
		task.Priority = input.Priority
	}
	if input.AssignedTo != nil {
		task.AssignedTo = input.AssignedTo
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.tasks.UpdateVersioned(ctx, task); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, unavailable(err)
	}
	return task, nil
}

// Delete removes a task and its comments.
func (s *TaskService) Delete(ctx context.Context, identity policy.Identity, taskID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrNotFound
		}
		return unavailable(err)
	}

	if !policy.CanMutateTask(identity, task) {
		return ErrForbidden
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrNotFound
		}
		return unavailable(err)
	}
	return nil
}

// load resolves a task together with its owning project.
func (s *TaskService) load(ctx context.Context, taskID uuid.UUID) (*model.Task, *model.Project, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, unavailable(err)
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, unavailable(err)
	}
	if project == nil {
		// Task without a live project should not happen; treat as gone.
		return nil, nil, ErrNotFound
	}
	return task, project, nil
}
