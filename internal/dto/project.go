package dto

import (
	"strings"
	"time"

	"github.com/taskwise/taskwise-api/internal/models"
)

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Validate returns every field-level problem with the request.
func (r *CreateProjectRequest) Validate() []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	var errs []FieldError
	if e := ValidateProjectName(r.Name); e != nil {
		errs = append(errs, *e)
	}
	if e := ValidateProjectDescription(r.Description); e != nil {
		errs = append(errs, *e)
	}
	if r.Color != "" {
		if e := ValidateColor(r.Color); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

// UpdateProjectRequest is the payload for a partial project update. Nil
// fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Validate returns every field-level problem with the request.
func (r *UpdateProjectRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		if e := ValidateProjectName(*r.Name); e != nil {
			errs = append(errs, *e)
		}
	}
	if r.Description != nil {
		if e := ValidateProjectDescription(*r.Description); e != nil {
			errs = append(errs, *e)
		}
	}
	if r.Color != nil {
		if e := ValidateColor(*r.Color); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

// AddMemberRequest carries the email-or-id identifier of the user to add.
type AddMemberRequest struct {
	MemberID string `json:"member_id"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	OwnerID     uint64    `json:"owner_id"`
	Owner       *UserDTO  `json:"owner,omitempty"`
	Members     []UserDTO `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Color:       project.Color,
		OwnerID:     project.OwnerID,
		Members:     []UserDTO{},
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include owner if preloaded
	if project.Owner.ID != 0 {
		owner := ToUserDTO(project.Owner)
		dto.Owner = &owner
	}

	// Include members if preloaded
	for _, m := range project.Members {
		if m.User.ID != 0 {
			dto.Members = append(dto.Members, ToUserDTO(m.User))
		} else {
			dto.Members = append(dto.Members, UserDTO{ID: m.UserID})
		}
	}

	return dto
}

// ToProjectDTOs converts a slice of projects.
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}
