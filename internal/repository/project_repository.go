package repository

import (
	"context"
	"errors"

	"taskhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	UpdateVersioned(ctx context.Context, project *model.Project) error
	ReplaceTeamMembers(ctx context.Context, project *model.Project, members []model.User) error
	AddTeamMember(ctx context.Context, project *model.Project, member *model.User) error
	RemoveTeamMember(ctx context.Context, project *model.Project, member *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Preload("TeamMembers").Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Return nil, nil to indicate that the project was not found
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser returns projects the user owns or belongs to. The
// filter runs in the query itself so projects outside the user's
// reach never leave the database.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Distinct("projects.*").
		Joins("LEFT JOIN project_members ON project_members.project_id = projects.id").
		Where("projects.created_by = ? OR project_members.user_id = ?", userID, userID).
		Preload("TeamMembers").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).Preload("TeamMembers").Find(&projects).Error
	return projects, err
}

// UpdateVersioned writes the project's mutable fields, guarded by the
// version the caller read. The version only advances when the row
// still carries that version, so a concurrent writer loses with
// ErrVersionConflict instead of silently overwriting.
func (r *ProjectRepository) UpdateVersioned(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND version = ?", project.ID, project.Version).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"description": project.Description,
			"status":      project.Status,
			"start_date":  project.StartDate,
			"end_date":    project.EndDate,
			"version":     project.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	project.Version++
	return nil
}

func (r *ProjectRepository) ReplaceTeamMembers(ctx context.Context, project *model.Project, members []model.User) error {
	return r.db.WithContext(ctx).Model(project).Association("TeamMembers").Replace(members)
}

func (r *ProjectRepository) AddTeamMember(ctx context.Context, project *model.Project, member *model.User) error {
	return r.db.WithContext(ctx).Model(project).Association("TeamMembers").Append(member)
}

func (r *ProjectRepository) RemoveTeamMember(ctx context.Context, project *model.Project, member *model.User) error {
	return r.db.WithContext(ctx).Model(project).Association("TeamMembers").Delete(member)
}

// Delete removes the project together with its tasks, their comments
// and the membership rows, in one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id IN (SELECT id FROM tasks WHERE project_id = ?)", id).
			Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, "id = ?", id).Error
	})
}
