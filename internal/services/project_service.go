package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskwise/taskwise-api/internal/constants"
	"github.com/taskwise/taskwise-api/internal/models"
	"github.com/taskwise/taskwise-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectAccessDenied = errors.New("user does not have access to this project")
	ErrNotProjectOwner     = errors.New("only the project owner can perform this action")
	ErrMemberUserNotFound  = errors.New("user not found")
	ErrAlreadyMember       = errors.New("user is already a member")
	ErrCannotRemoveOwner   = errors.New("cannot remove project owner")
)

// projectPreloads are the relations loaded whenever a project is returned to
// a caller or an access rule needs the member set.
var projectPreloads = []string{"Owner", "Members", "Members.User"}

// ProjectService provides business logic for project and membership operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Color       string
	OwnerID     uint64
}

// CreateProject creates a project owned by the caller, who also becomes the
// sole initial member.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	color := input.Color
	if color == "" {
		color = constants.DefaultProjectColor
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Color:       color,
		OwnerID:     input.OwnerID,
	}

	members := []models.ProjectMember{
		{UserID: input.OwnerID, AddedAt: time.Now()},
	}

	if err := s.projectRepo.Create(project, members); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// ListProjects returns the projects the user owns or is a member of, newest first.
func (s *ProjectService) ListProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project and its tasks. Not-found is reported before
// any access evaluation; a non-member learns only that the project exists.
func (s *ProjectService) GetProject(projectID, callerID uint64) (*models.Project, []models.Task, error) {
	project, err := s.projectRepo.FindByID(projectID, projectPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !CanReadProject(callerID, project) {
		return nil, nil, ErrProjectAccessDenied
	}

	tasks, err := s.taskRepo.ListByProject(project.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project tasks: %w", err)
	}

	return project, tasks, nil
}

// UpdateProjectInput represents input for updating a project. Nil fields are
// left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Color       *string
}

// UpdateProject merges the provided fields into the project. Owner only.
func (s *ProjectService) UpdateProject(projectID, callerID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !CanWriteProject(callerID, project) {
		return nil, ErrNotProjectOwner
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Color != nil {
		project.Color = *input.Color
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// DeleteProject deletes a project and every task referencing it. Owner only.
// Task and project deletion run in one transaction so a failure cannot leave
// orphaned tasks behind.
func (s *ProjectService) DeleteProject(projectID, callerID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !CanWriteProject(callerID, project) {
		return ErrNotProjectOwner
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AddMember resolves the identifier to a user and appends them to the
// project's member set. Owner only. Adding an existing member is rejected,
// not silently ignored.
func (s *ProjectService) AddMember(projectID, callerID uint64, identifier MemberIdentifier) (*models.Project, error) {
	user, err := s.resolveMember(identifier)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(projectID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !CanWriteProject(callerID, project) {
		return nil, ErrNotProjectOwner
	}

	if project.IsMember(user.ID) {
		return nil, ErrAlreadyMember
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		AddedAt:   time.Now(),
	}
	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// RemoveMember removes a member from the project. Owner only. The owner
// can never be removed; removing a user who is not a member is a no-op.
func (s *ProjectService) RemoveMember(projectID, callerID, memberID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !CanWriteProject(callerID, project) {
		return nil, ErrNotProjectOwner
	}

	if memberID == project.OwnerID {
		return nil, ErrCannotRemoveOwner
	}

	if err := s.projectRepo.RemoveMember(project.ID, memberID); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// resolveMember looks up the user behind a member identifier.
func (s *ProjectService) resolveMember(identifier MemberIdentifier) (*models.User, error) {
	var (
		user *models.User
		err  error
	)

	switch identifier.Kind {
	case IdentifierEmail:
		user, err = s.userRepo.FindByEmail(identifier.Email)
	case IdentifierID:
		user, err = s.userRepo.FindByID(identifier.ID)
	default:
		return nil, ErrMemberUserNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve member: %w", err)
	}

	return user, nil
}
