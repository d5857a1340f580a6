// Package policy holds the access decisions for projects, tasks and
// comments in one place. Every function here is pure: given an
// identity and an already-loaded entity it answers yes or no, with no
// database or network access. Handlers and services must not test
// ownership or membership on their own.
package policy

import (
	"github.com/google/uuid"

	"taskhub/internal/model"
)

// Identity is an authenticated actor, established once per request by
// the auth middleware from the verified token claims.
type Identity struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the identity carries the admin role.
// Admin wins every decision below; ownership wins over membership.
func (id Identity) IsAdmin() bool {
	return id.Role == model.RoleAdmin
}

// CanViewProject allows admins, the project owner and team members.
func CanViewProject(id Identity, project *model.Project) bool {
	if id.IsAdmin() {
		return true
	}
	return project.HasMember(id.ID)
}

// CanMutateProject allows admins and the project owner. Team members
// may not edit project metadata or membership.
func CanMutateProject(id Identity, project *model.Project) bool {
	if id.IsAdmin() {
		return true
	}
	return project.CreatedBy == id.ID
}

// CanCreateTask allows anyone who can view the project: membership
// implies task-creation rights.
func CanCreateTask(id Identity, project *model.Project) bool {
	return CanViewProject(id, project)
}

// CanMutateTask allows admins, the assignee and the task creator.
// The same gate covers status changes, full edits and deletes.
func CanMutateTask(id Identity, task *model.Task) bool {
	if id.IsAdmin() {
		return true
	}
	if task.AssignedTo != nil && *task.AssignedTo == id.ID {
		return true
	}
	return task.CreatedBy == id.ID
}

// CanViewTask delegates to the owning project: a task is visible to
// anyone who can view its project.
func CanViewTask(id Identity, task *model.Task, project *model.Project) bool {
	return CanViewProject(id, project)
}

// CanDeleteComment allows admins and the comment author. Anonymity
// does not mask a comment from its own author.
func CanDeleteComment(id Identity, comment *model.Comment) bool {
	if id.IsAdmin() {
		return true
	}
	return comment.CreatedBy == id.ID
}
