package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskwise/taskwise-api/internal/models"
	"github.com/taskwise/taskwise-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskAccessDenied = errors.New("user does not have access to this task")
	ErrNotTaskCreator   = errors.New("only the task creator can delete this task")
)

// taskPreloads are the relations resolved when a task is returned to a caller.
var taskPreloads = []string{"CreatedBy", "AssignedTo", "Project"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents filters for listing tasks. The caller only ever
// sees tasks they created or are assigned to; the filters narrow that set.
type ListTasksInput struct {
	CallerID     uint64
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	ProjectID    *uint64
	AssignedToID *uint64
}

// ListTasks returns the tasks visible to the caller, newest first.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		ViewerID:     input.CallerID,
		Status:       input.Status,
		Priority:     input.Priority,
		ProjectID:    input.ProjectID,
		AssignedToID: input.AssignedToID,
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task with related data. Not-found is reported before the
// access rule runs.
func (s *TaskService) GetTask(taskID, callerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !CanReadTask(callerID, task) {
		return nil, ErrTaskAccessDenied
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	Status       models.TaskStatus
	Priority     models.TaskPriority
	DueDate      *time.Time
	ProjectID    *uint64
	AssignedToID *uint64
	CreatorID    uint64
}

// CreateTask creates a new task with the caller as its creator.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		DueDate:      input.DueDate,
		ProjectID:    input.ProjectID,
		AssignedToID: input.AssignedToID,
		CreatedByID:  input.CreatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; the Clear flags set their nullable field to null.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	DueDate       *time.Time
	ClearDueDate  bool
	ProjectID     *uint64
	ClearProject  bool
	AssignedToID  *uint64
	ClearAssignee bool
}

// UpdateTask updates an existing task. Creator and assignee may both edit.
func (s *TaskService) UpdateTask(taskID, callerID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !CanWriteTask(callerID, task) {
		return nil, ErrTaskAccessDenied
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearProject {
		task.ProjectID = nil
	} else if input.ProjectID != nil {
		task.ProjectID = input.ProjectID
	}
	if input.ClearAssignee {
		task.AssignedToID = nil
	} else if input.AssignedToID != nil {
		task.AssignedToID = input.AssignedToID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask deletes a task. Only the creator may; the assignee can edit but
// not discard work delegated to them.
func (s *TaskService) DeleteTask(taskID, callerID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !CanDeleteTask(callerID, task) {
		return ErrNotTaskCreator
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// DashboardStats summarizes the caller's visible task set.
type DashboardStats struct {
	Total        int `json:"total"`
	Todo         int `json:"todo"`
	InProgress   int `json:"inProgress"`
	Completed    int `json:"completed"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}

// GetDashboardStats computes counts over every task the caller can see.
// Overdue means the due date has passed and the task is not completed.
func (s *TaskService) GetDashboardStats(callerID uint64) (*DashboardStats, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{ViewerID: callerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := time.Now()
	stats := &DashboardStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusTodo:
			stats.Todo++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusCompleted:
			stats.Completed++
		}
		if t.Priority == models.TaskPriorityHigh {
			stats.HighPriority++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.TaskStatusCompleted {
			stats.Overdue++
		}
	}

	return stats, nil
}
