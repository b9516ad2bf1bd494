package constants

import "time"

// Context keys
const (
	ContextKeyUserEmail = "user_email"
)

// Validation limits
const (
	MinPasswordLength = 6
	MinTitleLength    = 3
	MaxTitleLength    = 255
)

// Token settings
const (
	TokenTTL    = 24 * time.Hour
	TokenIssuer = "task-list-api"
)

// MaxAIGeneratedTasks caps how many drafts a single generation request may return
const MaxAIGeneratedTasks = 20
