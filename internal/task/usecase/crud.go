package usecase

import (
	"context"
	"errors"

	"voicetask/internal/model"
	"voicetask/internal/task"
	"voicetask/internal/task/repository"
)

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) (task.ListOutput, error) {
	tasks, total, err := uc.repo.List(ctx, repository.ListTasksOptions{
		IncludeCompleted: input.IncludeCompleted,
		Limit:            input.Limit,
		Offset:           input.Offset,
	})
	if err != nil {
		return task.ListOutput{}, err
	}
	return task.ListOutput{Tasks: tasks, Total: total}, nil
}

func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	t, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Task{}, task.ErrTaskNotFound
		}
		return model.Task{}, err
	}
	return t, nil
}

func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return task.ErrTaskNotFound
		}
		return err
	}
	return nil
}
