package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the three known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the three known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title"`
	Description  string         `gorm:"type:varchar(1000)" json:"description"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'todo';index:idx_tasks_status_priority" json:"status"`
	Priority     TaskPriority   `gorm:"type:varchar(20);not null;default:'medium';index:idx_tasks_status_priority" json:"priority"`
	ProjectID    *uint64        `gorm:"index" json:"project_id"`
	AssignedToID *uint64        `gorm:"index" json:"assigned_to_id"`
	CreatedByID  uint64         `gorm:"not null;index" json:"created_by_id"`
	DueDate      *time.Time     `json:"due_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo *User    `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedBy  User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// IsAssignee reports whether the task is currently assigned to the user.
func (t *Task) IsAssignee(userID uint64) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}
