package dto

import (
	"regexp"
	"time"

	"github.com/taskwise/taskwise-api/internal/constants"
	"github.com/taskwise/taskwise-api/internal/models"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ValidateUserName checks the registration name field.
func ValidateUserName(name string) *FieldError {
	if len(name) < constants.MinNameLength || len(name) > constants.MaxNameLength {
		return &FieldError{Field: "name", Message: "Name must be 2-50 characters"}
	}
	return nil
}

// ValidateEmail checks an email address.
func ValidateEmail(email string) *FieldError {
	if !emailPattern.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email address"}
	}
	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) *FieldError {
	if len(password) < constants.MinPasswordLength {
		return &FieldError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

// ValidateProjectName checks a project name.
func ValidateProjectName(name string) *FieldError {
	if len(name) < constants.MinProjectNameLength || len(name) > constants.MaxProjectNameLength {
		return &FieldError{Field: "name", Message: "Name must be 2-100 characters"}
	}
	return nil
}

// ValidateProjectDescription checks a project description.
func ValidateProjectDescription(description string) *FieldError {
	if len(description) > constants.MaxProjectDescription {
		return &FieldError{Field: "description", Message: "Description cannot exceed 500 characters"}
	}
	return nil
}

// ValidateColor checks the #RRGGBB color format, case-insensitively.
func ValidateColor(color string) *FieldError {
	if !colorPattern.MatchString(color) {
		return &FieldError{Field: "color", Message: "Invalid color format"}
	}
	return nil
}

// ValidateTaskTitle checks a task title.
func ValidateTaskTitle(title string) *FieldError {
	if len(title) < constants.MinTaskTitleLength || len(title) > constants.MaxTaskTitleLength {
		return &FieldError{Field: "title", Message: "Title must be 3-200 characters"}
	}
	return nil
}

// ValidateTaskDescription checks a task description.
func ValidateTaskDescription(description string) *FieldError {
	if len(description) > constants.MaxTaskDescription {
		return &FieldError{Field: "description", Message: "Description cannot exceed 1000 characters"}
	}
	return nil
}

// ValidateTaskStatus checks a status value against the closed enum.
func ValidateTaskStatus(status models.TaskStatus) *FieldError {
	if !status.Valid() {
		return &FieldError{Field: "status", Message: "Invalid status"}
	}
	return nil
}

// ValidateTaskPriority checks a priority value against the closed enum.
func ValidateTaskPriority(priority models.TaskPriority) *FieldError {
	if !priority.Valid() {
		return &FieldError{Field: "priority", Message: "Invalid priority"}
	}
	return nil
}

// ParseDueDate parses an RFC 3339 due date string.
func ParseDueDate(raw string) (time.Time, *FieldError) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &FieldError{Field: "due_date", Message: "Invalid date format"}
	}
	return t, nil
}
