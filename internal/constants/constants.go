package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Authentication
const (
	MinPasswordLength = 6
	TokenLifetime     = 7 * 24 * time.Hour
)

// Field limits
const (
	MinNameLength = 2
	MaxNameLength = 50

	MinProjectNameLength  = 2
	MaxProjectNameLength  = 100
	MaxProjectDescription = 500
	MinTaskTitleLength    = 3
	MaxTaskTitleLength    = 200
	MaxTaskDescription    = 1000
)

// DefaultProjectColor is applied when a project is created without a color.
const DefaultProjectColor = "#3B82F6"

// MaxAIGeneratedTasks caps how many tasks a single AI breakdown may return.
const MaxAIGeneratedTasks = 20
