package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"voicetask/internal/model"
	"voicetask/internal/task/repository"
)

const defaultListLimit = 20

func (r *Repository) Create(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	now := time.Now()
	t := model.Task{
		ID:           uuid.NewString(),
		Title:        opt.Title,
		Notes:        opt.Notes,
		DueDate:      opt.DueDate,
		Priority:     opt.Priority,
		Reminders:    opt.Reminders,
		Attendees:    opt.Attendees,
		CalendarLink: opt.CalendarLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)

	return t, nil
}

func (r *Repository) Get(ctx context.Context, id string) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, repository.ErrNotFound
	}
	return t, nil
}

func (r *Repository) List(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, int, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first.
	all := make([]model.Task, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.tasks[r.order[i]]
		if !opt.IncludeCompleted && t.Completed {
			continue
		}
		all = append(all, t)
	}

	total := len(all)
	if opt.Offset >= total {
		return nil, total, nil
	}
	all = all[opt.Offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *Repository) Update(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; !ok {
		return model.Task{}, repository.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	r.tasks[t.ID] = t
	return t, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repository) FindByTitle(ctx context.Context, title string) (model.Task, error) {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return model.Task{}, repository.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Exact match wins; fall back to substring in either direction,
	// preferring the most recently created candidate.
	var fuzzy *model.Task
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.tasks[r.order[i]]
		have := strings.ToLower(t.Title)
		if have == "" {
			continue
		}
		if have == needle {
			return t, nil
		}
		if fuzzy == nil && (strings.Contains(have, needle) || strings.Contains(needle, have)) {
			tt := t
			fuzzy = &tt
		}
	}
	if fuzzy != nil {
		return *fuzzy, nil
	}
	return model.Task{}, repository.ErrNotFound
}
