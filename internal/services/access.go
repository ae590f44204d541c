package services

import (
	"github.com/taskwise/taskwise-api/internal/models"
)

// Access rules for projects and tasks. These are evaluated only after the
// resource has been confirmed to exist: not-found is always decided first so
// a denied caller learns nothing more than that the resource exists.

// CanReadProject reports whether the user may view the project.
// Owners and members have read access; nobody else does.
// Requires project.Members to be loaded.
func CanReadProject(userID uint64, project *models.Project) bool {
	return project.OwnerID == userID || project.IsMember(userID)
}

// CanWriteProject reports whether the user may mutate the project, including
// updates, deletion, and membership changes. Only the owner may; membership
// grants read access but no write capability.
func CanWriteProject(userID uint64, project *models.Project) bool {
	return project.OwnerID == userID
}

// CanReadTask reports whether the user may view the task. The creator and the
// current assignee share read access.
func CanReadTask(userID uint64, task *models.Task) bool {
	return task.CreatedByID == userID || task.IsAssignee(userID)
}

// CanWriteTask reports whether the user may update the task's fields. Write
// access is symmetric with read access: creator and assignee both edit.
func CanWriteTask(userID uint64, task *models.Task) bool {
	return task.CreatedByID == userID || task.IsAssignee(userID)
}

// CanDeleteTask reports whether the user may delete the task. Stricter than
// write: only the creator may discard a task, an assignee cannot.
func CanDeleteTask(userID uint64, task *models.Task) bool {
	return task.CreatedByID == userID
}
