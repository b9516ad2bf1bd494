package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/task-list-api/internal/constants"
)

// ErrValidation is wrapped by every input validation failure.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidEmail       = fmt.Errorf("%w: email is not well-formed", ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, constants.MinPasswordLength)
	ErrPasswordTooLong    = fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
	ErrUserAlreadyExists  = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskPermissionDenied   = errors.New("user does not have permission to modify this task")
	ErrTitleTooShort          = fmt.Errorf("%w: title must be at least %d characters", ErrValidation, constants.MinTitleLength)
	ErrTitleTooLong           = fmt.Errorf("%w: title must be at most %d characters", ErrValidation, constants.MaxTitleLength)
	ErrInvalidStatus          = fmt.Errorf("%w: status must be one of pending, in_progress, completed", ErrValidation)
	ErrTextRequired           = fmt.Errorf("%w: text is required", ErrValidation)
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)
