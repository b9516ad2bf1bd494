package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-list-api/internal/constants"
	"github.com/yukikurage/task-list-api/internal/models"
	"github.com/yukikurage/task-list-api/internal/repository"
)

// TaskDrafter turns free text into task suggestions
type TaskDrafter interface {
	GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	drafter  TaskDrafter
}

// NewTaskService creates a new TaskService. drafter may be nil.
func NewTaskService(taskRepo repository.TaskRepository, drafter TaskDrafter) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		drafter:  drafter,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	OwnerEmail  string
}

// UpdateTaskInput represents input for updating a task.
// Only the whitelisted fields can be changed; nil means unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// CreateTask validates and stores a new pending task
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		OwnerEmail:  input.OwnerEmail,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns the tasks owned by ownerEmail
func (s *TaskService) ListTasks(ctx context.Context, ownerEmail string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	// The store is trusted to filter, but never hand out foreign rows.
	owned := tasks[:0]
	for _, task := range tasks {
		if task.OwnerEmail == ownerEmail {
			owned = append(owned, task)
		}
	}

	return owned, nil
}

// GetTask returns a task owned by ownerEmail
func (s *TaskService) GetTask(ctx context.Context, taskID, ownerEmail string) (*models.Task, error) {
	return s.findOwnedTask(ctx, taskID, ownerEmail)
}

// UpdateTask applies a partial update to a task owned by ownerEmail
func (s *TaskService) UpdateTask(ctx context.Context, taskID, ownerEmail string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwnedTask(ctx, taskID, ownerEmail)
	if err != nil {
		return nil, err
	}

	fields := repository.TaskFields{
		Description: input.Description,
	}
	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		fields.Title = &title
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields.Status = input.Status
	}

	if fields.Empty() {
		return task, nil
	}

	updated, err := s.taskRepo.Update(ctx, taskID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

// CompleteTask marks a task owned by ownerEmail as completed
func (s *TaskService) CompleteTask(ctx context.Context, taskID, ownerEmail string) (*models.Task, error) {
	status := models.TaskStatusCompleted
	return s.UpdateTask(ctx, taskID, ownerEmail, UpdateTaskInput{Status: &status})
}

// DeleteTask deletes a task owned by ownerEmail
func (s *TaskService) DeleteTask(ctx context.Context, taskID, ownerEmail string) (bool, error) {
	if _, err := s.findOwnedTask(ctx, taskID, ownerEmail); err != nil {
		return false, err
	}

	deleted, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return false, ErrTaskNotFound
	}

	return true, nil
}

// GenerateTasks drafts tasks from text without storing them
func (s *TaskService) GenerateTasks(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	drafts, err := s.drafter.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	valid := make([]GeneratedTask, 0, len(drafts))
	for _, draft := range drafts {
		title, err := validateTitle(draft.Title)
		if err != nil {
			continue
		}
		draft.Title = title
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

// findOwnedTask loads a task and checks ownership before anything else touches it
func (s *TaskService) findOwnedTask(ctx context.Context, taskID, ownerEmail string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerEmail != ownerEmail {
		return nil, ErrTaskPermissionDenied
	}

	return task, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(title)
	if n < constants.MinTitleLength {
		return "", ErrTitleTooShort
	}
	if n > constants.MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
