package repository

import (
	"github.com/taskwise/taskwise-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project together with its initial member rows
	Create(project *models.Project, members []models.ProjectMember) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists projects the user owns or is a member of, newest first
	ListForUser(userID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project, its member rows, and every task that
	// references it within a single transaction
	Delete(id uint64) error

	// AddMember adds a member row to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member row; removing an absent member is a no-op
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific project member row
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves the tasks visible to a viewer, newest first,
	// narrowed by the optional filters
	List(filter TaskFilter) ([]models.Task, error)

	// ListByProject lists every task belonging to a project, newest first
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// TaskFilter holds the visibility scope and optional narrowing filters for
// listing tasks. ViewerID is mandatory: only tasks created by or assigned to
// the viewer are returned. The remaining filters intersect that set.
type TaskFilter struct {
	ViewerID     uint64
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	ProjectID    *uint64
	AssignedToID *uint64
}
