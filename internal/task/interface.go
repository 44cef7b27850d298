package task

import (
	"context"

	"voicetask/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Materialize turns reconciled structured commands into task records and
	// applies mutations targeting tasks from earlier batches.
	Materialize(ctx context.Context, sc model.Scope, input MaterializeInput) (MaterializeOutput, error)

	// List returns stored tasks, newest first.
	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)

	// Detail returns one task by id.
	Detail(ctx context.Context, sc model.Scope, id string) (model.Task, error)

	// Delete removes one task by id.
	Delete(ctx context.Context, sc model.Scope, id string) error
}
