package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskwise/taskwise-api/internal/dto"
	apierrors "github.com/taskwise/taskwise-api/internal/errors"
	"github.com/taskwise/taskwise-api/internal/middleware"
	"github.com/taskwise/taskwise-api/internal/services"
)

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns every project the caller owns or is a member of.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	dtos := dto.ToProjectDTOs(projects)
	c.JSON(http.StatusOK, gin.H{
		"projects": dtos,
		"count":    len(dtos),
	})
}

// GetProject returns a single project together with its tasks.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, tasks, err := h.projectService.GetProject(projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": dto.ToProjectDTO(*project),
		"tasks":   dto.ToTaskDTOs(tasks),
	})
}

// CreateProject creates a new project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		apierrors.BadRequestWithDetails(c, joinFieldErrors(errs), errs)
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		OwnerID:     userID,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// UpdateProject merges the provided fields into the project. Owner only.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		apierrors.BadRequestWithDetails(c, joinFieldErrors(errs), errs)
		return
	}

	project, err := h.projectService.UpdateProject(projectID, userID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// DeleteProject deletes a project and its tasks. Owner only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project and associated tasks deleted successfully",
	})
}

// AddMember adds a user, identified by email or id, to the project. Owner only.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.MemberID == "" {
		apierrors.BadRequest(c, "Member email or ID is required")
		return
	}

	identifier, ok := services.ParseMemberIdentifier(req.MemberID)
	if !ok {
		apierrors.NotFound(c, "User not found")
		return
	}

	project, err := h.projectService.AddMember(projectID, userID, identifier)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// RemoveMember removes a member from the project. Owner only.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	project, err := h.projectService.RemoveMember(projectID, userID, memberID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrMemberUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrProjectAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, "Only the project owner can perform this action")
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.BadRequestCode(c, apierrors.ErrCodeAlreadyMember, "User is already a member")
	case errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.BadRequestCode(c, apierrors.ErrCodeCannotRemoveOwner, "Cannot remove project owner")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// parseIDParam parses a numeric URL parameter, responding with 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
