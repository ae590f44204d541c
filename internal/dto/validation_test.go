package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskwise/taskwise-api/internal/models"
)

func TestValidateUserName(t *testing.T) {
	assert.Nil(t, ValidateUserName("Al"))
	assert.Nil(t, ValidateUserName(strings.Repeat("a", 50)))

	err := ValidateUserName("A")
	assert.NotNil(t, err)
	assert.Equal(t, "Name must be 2-50 characters", err.Message)

	assert.NotNil(t, ValidateUserName(strings.Repeat("a", 51)))
}

func TestValidateEmail(t *testing.T) {
	assert.Nil(t, ValidateEmail("user@example.com"))
	assert.Nil(t, ValidateEmail("a+b@sub.example.co"))

	for _, bad := range []string{"", "plain", "@example.com", "user@", "user @example.com", "user@example"} {
		err := ValidateEmail(bad)
		if assert.NotNil(t, err, "expected %q to be rejected", bad) {
			assert.Equal(t, "Invalid email address", err.Message)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Nil(t, ValidatePassword("123456"))

	err := ValidatePassword("12345")
	assert.NotNil(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Message)
}

func TestValidateProjectName(t *testing.T) {
	assert.Nil(t, ValidateProjectName("My"))
	assert.Nil(t, ValidateProjectName(strings.Repeat("a", 100)))

	err := ValidateProjectName("M")
	assert.NotNil(t, err)
	assert.Equal(t, "Name must be 2-100 characters", err.Message)

	assert.NotNil(t, ValidateProjectName(strings.Repeat("a", 101)))
}

func TestValidateProjectDescription(t *testing.T) {
	assert.Nil(t, ValidateProjectDescription(""))
	assert.Nil(t, ValidateProjectDescription(strings.Repeat("a", 500)))

	err := ValidateProjectDescription(strings.Repeat("a", 501))
	assert.NotNil(t, err)
	assert.Equal(t, "Description cannot exceed 500 characters", err.Message)
}

func TestValidateColor(t *testing.T) {
	assert.Nil(t, ValidateColor("#3B82F6"))
	assert.Nil(t, ValidateColor("#abcdef"))

	for _, bad := range []string{"3B82F6", "#3B82F", "#3B82F6A", "#GGGGGG", "red"} {
		err := ValidateColor(bad)
		if assert.NotNil(t, err, "expected %q to be rejected", bad) {
			assert.Equal(t, "Invalid color format", err.Message)
		}
	}
}

func TestValidateTaskTitle(t *testing.T) {
	assert.Nil(t, ValidateTaskTitle("Fix"))
	assert.Nil(t, ValidateTaskTitle(strings.Repeat("a", 200)))

	err := ValidateTaskTitle("ab")
	assert.NotNil(t, err)
	assert.Equal(t, "Title must be 3-200 characters", err.Message)

	assert.NotNil(t, ValidateTaskTitle(strings.Repeat("a", 201)))
}

func TestValidateTaskDescription(t *testing.T) {
	assert.Nil(t, ValidateTaskDescription(strings.Repeat("a", 1000)))

	err := ValidateTaskDescription(strings.Repeat("a", 1001))
	assert.NotNil(t, err)
	assert.Equal(t, "Description cannot exceed 1000 characters", err.Message)
}

func TestValidateTaskStatus(t *testing.T) {
	for _, ok := range []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusCompleted} {
		assert.Nil(t, ValidateTaskStatus(ok))
	}

	err := ValidateTaskStatus("done")
	assert.NotNil(t, err)
	assert.Equal(t, "Invalid status", err.Message)
}

func TestValidateTaskPriority(t *testing.T) {
	for _, ok := range []models.TaskPriority{models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh} {
		assert.Nil(t, ValidateTaskPriority(ok))
	}

	err := ValidateTaskPriority("urgent")
	assert.NotNil(t, err)
	assert.Equal(t, "Invalid priority", err.Message)
}

func TestParseDueDate(t *testing.T) {
	parsed, err := ParseDueDate("2026-03-01T12:00:00Z")
	assert.Nil(t, err)
	assert.Equal(t, 2026, parsed.Year())

	_, err = ParseDueDate("next tuesday")
	assert.NotNil(t, err)
	assert.Equal(t, "Invalid date format", err.Message)
}

func TestCreateProjectRequest_Validate_CollectsAllErrors(t *testing.T) {
	req := CreateProjectRequest{
		Name:        "X",
		Description: strings.Repeat("a", 501),
		Color:       "blue",
	}

	errs := req.Validate()
	assert.Len(t, errs, 3)
}

func TestCreateTaskRequest_Validate_TrimsWhitespace(t *testing.T) {
	req := CreateTaskRequest{Title: "  Fix the bug  "}

	errs := req.Validate()
	assert.Empty(t, errs)
	assert.Equal(t, "Fix the bug", req.Title)
}
