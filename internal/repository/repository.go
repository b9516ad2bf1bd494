package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/task-list-api/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateKey is returned when an insert violates a unique constraint.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)

// TaskFields holds the task columns that may change after creation.
// Nil fields are left untouched.
type TaskFields struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// Empty reports whether no field is set.
func (f TaskFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Status == nil
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create stores a new task and assigns its ID
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// ListByOwner lists the tasks owned by email in insertion order
	ListByOwner(ctx context.Context, email string) ([]models.Task, error)

	// Update merges fields into the task and returns the result.
	// It does not check ownership.
	Update(ctx context.Context, id string, fields TaskFields) (*models.Task, error)

	// Delete removes a task, reporting whether it existed
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user, failing with ErrDuplicateKey on a taken email
	Create(ctx context.Context, user *models.User) error

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
