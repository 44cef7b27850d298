package repository

import (
	"context"

	"voicetask/internal/model"
)

// TaskRepository is the interface for task persistence.
type TaskRepository interface {
	Create(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	List(ctx context.Context, opt ListTasksOptions) ([]model.Task, int, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id string) error

	// FindByTitle locates a task by fuzzy title match: exact
	// case-insensitive first, then substring in either direction.
	FindByTitle(ctx context.Context, title string) (model.Task, error)
}
