package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskwise/taskwise-api/internal/dto"
	apierrors "github.com/taskwise/taskwise-api/internal/errors"
	"github.com/taskwise/taskwise-api/internal/middleware"
	"github.com/taskwise/taskwise-api/internal/models"
	"github.com/taskwise/taskwise-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	aiService   *services.AIService
}

// NewTaskHandler creates a new TaskHandler. aiService may be nil when no
// OpenAI key is configured.
func NewTaskHandler(taskService *services.TaskService, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		aiService:   aiService,
	}
}

// ListTasks returns the tasks the caller created or is assigned to,
// optionally filtered by status, priority, project or assignee.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListTasksInput{CallerID: userID}

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}

	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !priority.Valid() {
			apierrors.BadRequest(c, "Invalid priority")
			return
		}
		input.Priority = &priority
	}

	if raw := c.Query("project"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project")
			return
		}
		input.ProjectID = &id
	}

	if raw := c.Query("assigned_to"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assigned_to")
			return
		}
		input.AssignedToID = &id
	}

	tasks, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	dtos := dto.ToTaskDTOs(tasks)
	c.JSON(http.StatusOK, gin.H{
		"tasks": dtos,
		"count": len(dtos),
	})
}

// GetTask returns a single task with its related data.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// CreateTask creates a new task with the caller as its creator.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		apierrors.BadRequestWithDetails(c, joinFieldErrors(errs), errs)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ProjectID:    req.ProjectID,
		AssignedToID: req.AssignedToID,
		CreatorID:    userID,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask applies a partial update to a task. The raw body is inspected
// so an explicit null can clear due_date, project_id or assigned_to_id,
// while an absent key leaves the field untouched.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, errs := buildUpdateTaskInput(raw)
	if len(errs) > 0 {
		apierrors.BadRequestWithDetails(c, joinFieldErrors(errs), errs)
		return
	}

	task, err := h.taskService.UpdateTask(taskID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// DeleteTask deletes a task. Creator only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GetDashboardStats returns aggregate counts over the caller's visible tasks.
func (h *TaskHandler) GetDashboardStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.taskService.GetDashboardStats(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GenerateTasks extracts task suggestions from free-form text.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	_, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI task generation is not configured")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		apierrors.BadRequest(c, "Text is required")
		return
	}

	tasks, err := h.aiService.GenerateTasksFromText(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to generate tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// buildUpdateTaskInput turns the raw JSON body of an update request into a
// service input, distinguishing absent keys from explicit nulls.
func buildUpdateTaskInput(raw map[string]json.RawMessage) (services.UpdateTaskInput, []dto.FieldError) {
	var input services.UpdateTaskInput
	var errs []dto.FieldError

	if msg, ok := raw["title"]; ok {
		var title string
		if err := json.Unmarshal(msg, &title); err != nil {
			errs = append(errs, dto.FieldError{Field: "title", Message: "Title must be 3-200 characters"})
		} else {
			title = strings.TrimSpace(title)
			if e := dto.ValidateTaskTitle(title); e != nil {
				errs = append(errs, *e)
			} else {
				input.Title = &title
			}
		}
	}

	if msg, ok := raw["description"]; ok {
		var description string
		if err := json.Unmarshal(msg, &description); err != nil {
			errs = append(errs, dto.FieldError{Field: "description", Message: "Description cannot exceed 1000 characters"})
		} else {
			description = strings.TrimSpace(description)
			if e := dto.ValidateTaskDescription(description); e != nil {
				errs = append(errs, *e)
			} else {
				input.Description = &description
			}
		}
	}

	if msg, ok := raw["status"]; ok {
		var status models.TaskStatus
		if err := json.Unmarshal(msg, &status); err != nil || !status.Valid() {
			errs = append(errs, dto.FieldError{Field: "status", Message: "Invalid status"})
		} else {
			input.Status = &status
		}
	}

	if msg, ok := raw["priority"]; ok {
		var priority models.TaskPriority
		if err := json.Unmarshal(msg, &priority); err != nil || !priority.Valid() {
			errs = append(errs, dto.FieldError{Field: "priority", Message: "Invalid priority"})
		} else {
			input.Priority = &priority
		}
	}

	if msg, ok := raw["due_date"]; ok {
		if isJSONNull(msg) {
			input.ClearDueDate = true
		} else {
			var value string
			if err := json.Unmarshal(msg, &value); err != nil {
				errs = append(errs, dto.FieldError{Field: "due_date", Message: "Invalid date format"})
			} else if t, e := dto.ParseDueDate(value); e != nil {
				errs = append(errs, *e)
			} else {
				input.DueDate = &t
			}
		}
	}

	if msg, ok := raw["project_id"]; ok {
		if isJSONNull(msg) {
			input.ClearProject = true
		} else {
			var id uint64
			if err := json.Unmarshal(msg, &id); err != nil {
				errs = append(errs, dto.FieldError{Field: "project_id", Message: "Invalid project_id"})
			} else {
				input.ProjectID = &id
			}
		}
	}

	if msg, ok := raw["assigned_to_id"]; ok {
		if isJSONNull(msg) {
			input.ClearAssignee = true
		} else {
			var id uint64
			if err := json.Unmarshal(msg, &id); err != nil {
				errs = append(errs, dto.FieldError{Field: "assigned_to_id", Message: "Invalid assigned_to_id"})
			} else {
				input.AssignedToID = &id
			}
		}
	}

	return input, errs
}

func isJSONNull(msg json.RawMessage) bool {
	return string(msg) == "null"
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrNotTaskCreator):
		apierrors.Forbidden(c, "Only the task creator can delete this task")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
