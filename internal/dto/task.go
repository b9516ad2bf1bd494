package dto

import (
	"github.com/yukikurage/task-list-api/internal/models"
	"github.com/yukikurage/task-list-api/internal/services"
)

// TaskDTO represents a task in API responses. The owner is never exposed.
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
}

// GeneratedTaskDTO represents an AI task draft
type GeneratedTaskDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GeneratedTasksResponse wraps a list of drafts
type GeneratedTasksResponse struct {
	Tasks []GeneratedTaskDTO `json:"tasks"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
	}
}

// ToTaskDTOs converts tasks, always returning a non-nil slice
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToGeneratedTasksResponse converts drafts from the task service
func ToGeneratedTasksResponse(drafts []services.GeneratedTask) GeneratedTasksResponse {
	items := make([]GeneratedTaskDTO, len(drafts))
	for i, draft := range drafts {
		items[i] = GeneratedTaskDTO{
			Title:       draft.Title,
			Description: draft.Description,
		}
	}
	return GeneratedTasksResponse{Tasks: items}
}
