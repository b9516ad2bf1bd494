package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/task-list-api/internal/models"
)

// MemoryUserRepository is an in-process UserRepository
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID uint64
}

// NewMemoryUserRepository creates an empty MemoryUserRepository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

// Create stores user, rejecting a taken email
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrDuplicateKey
	}

	r.nextID++
	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.Email] = *user
	return nil
}

// FindByEmail finds a user by email
func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// MemoryTaskRepository is an in-process TaskRepository
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
	order []string
}

// NewMemoryTaskRepository creates an empty MemoryTaskRepository
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]models.Task)}
}

// Create stores task and assigns its ID
func (r *MemoryTaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if _, exists := r.tasks[task.ID]; exists {
		return ErrDuplicateKey
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	return nil
}

// FindByID finds a task by ID
func (r *MemoryTaskRepository) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &task, nil
}

// ListByOwner lists tasks owned by email in insertion order
func (r *MemoryTaskRepository) ListByOwner(_ context.Context, email string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []models.Task{}
	for _, id := range r.order {
		if task := r.tasks[id]; task.OwnerEmail == email {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// Update applies the non-nil fields
func (r *MemoryTaskRepository) Update(_ context.Context, id string, fields TaskFields) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	if fields.Title != nil {
		task.Title = *fields.Title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.Status != nil {
		task.Status = *fields.Status
	}
	if !fields.Empty() {
		task.UpdatedAt = time.Now()
	}

	r.tasks[id] = task
	return &task, nil
}

// Delete removes a task
func (r *MemoryTaskRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}

	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
