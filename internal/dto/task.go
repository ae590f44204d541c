package dto

import (
	"strings"
	"time"

	"github.com/taskwise/taskwise-api/internal/models"
)

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"due_date"`
	ProjectID    *uint64             `json:"project_id"`
	AssignedToID *uint64             `json:"assigned_to_id"`
}

// Validate returns every field-level problem with the request.
func (r *CreateTaskRequest) Validate() []FieldError {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)

	var errs []FieldError
	if e := ValidateTaskTitle(r.Title); e != nil {
		errs = append(errs, *e)
	}
	if e := ValidateTaskDescription(r.Description); e != nil {
		errs = append(errs, *e)
	}
	if r.Status != "" {
		if e := ValidateTaskStatus(r.Status); e != nil {
			errs = append(errs, *e)
		}
	}
	if r.Priority != "" {
		if e := ValidateTaskPriority(r.Priority); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

// ProjectRefDTO is the slim project reference embedded in task responses.
type ProjectRefDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"due_date"`
	ProjectID    *uint64             `json:"project_id"`
	AssignedToID *uint64             `json:"assigned_to_id"`
	CreatedByID  uint64              `json:"created_by_id"`
	Project      *ProjectRefDTO      `json:"project,omitempty"`
	AssignedTo   *UserDTO            `json:"assigned_to,omitempty"`
	CreatedBy    *UserDTO            `json:"created_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		ProjectID:    task.ProjectID,
		AssignedToID: task.AssignedToID,
		CreatedByID:  task.CreatedByID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include project if preloaded
	if task.Project != nil && task.Project.ID != 0 {
		dto.Project = &ProjectRefDTO{
			ID:    task.Project.ID,
			Name:  task.Project.Name,
			Color: task.Project.Color,
		}
	}

	// Include assignee if preloaded
	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(*task.AssignedTo)
		dto.AssignedTo = &assignee
	}

	// Include creator if preloaded
	if task.CreatedBy.ID != 0 {
		creator := ToUserDTO(task.CreatedBy)
		dto.CreatedBy = &creator
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
