package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"taskhub/internal/model"
	"taskhub/internal/policy"
	"taskhub/internal/repository"
)

type CommentService struct {
	comments repository.CommentRepositoryInterface
	tasks    repository.TaskRepositoryInterface
	projects repository.ProjectRepositoryInterface
	users    repository.UserRepositoryInterface
}

func NewCommentService(
	comments repository.CommentRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	users repository.UserRepositoryInterface,
) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, projects: projects, users: users}
}

// Create posts a comment on a task the caller can view. Commenting
// requires view access to the owning project, not just a valid token.
// The author is always stored, anonymous or not.
func (s *CommentService) Create(ctx context.Context, identity policy.Identity, taskID uuid.UUID, content string, isAnonymous bool) (policy.CommentView, error) {
	task, project, err := s.loadTask(ctx, taskID)
	if err != nil {
		return policy.CommentView{}, err
	}

	if !policy.CanViewTask(identity, task, project) {
		return policy.CommentView{}, ErrForbidden
	}

	comment := &model.Comment{
		ID:          uuid.New(),
		TaskID:      taskID,
		Content:     content,
		IsAnonymous: isAnonymous,
		CreatedBy:   identity.ID,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return policy.CommentView{}, unavailable(err)
	}

	author, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		return policy.CommentView{}, unavailable(err)
	}
	if author == nil {
		return policy.CommentView{}, ErrNotFound
	}

	// The author always sees their own identity on the fresh comment.
	return policy.RedactComment(identity, comment, author), nil
}

// List returns the task's comments as the caller is allowed to see
// them. Redaction happens here, once, before anything leaves the
// service.
func (s *CommentService) List(ctx context.Context, identity policy.Identity, taskID uuid.UUID) ([]policy.CommentView, error) {
	task, project, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewTask(identity, task, project) {
		return nil, ErrForbidden
	}

	comments, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, unavailable(err)
	}

	views := make([]policy.CommentView, len(comments))
	for i := range comments {
		views[i] = policy.RedactComment(identity, &comments[i], &comments[i].Author)
	}
	return views, nil
}

// Delete removes a comment. Only the author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, identity policy.Identity, commentID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrNotFound
		}
		return unavailable(err)
	}

	if !policy.CanDeleteComment(identity, comment) {
		return ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrNotFound
		}
		return unavailable(err)
	}
	return nil
}

func (s *CommentService) loadTask(ctx context.Context, taskID uuid.UUID) (*model.Task, *model.Project, error) {
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
		return nil, nil, ErrNotFound
	}
	return task, project, nil
}
