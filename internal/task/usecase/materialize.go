package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"voicetask/internal/model"
	"voicetask/internal/task"
	"voicetask/internal/task/repository"
	"voicetask/internal/voice"
	"voicetask/internal/voice/reminder"
)

// Materialize applies one reconciled batch to the store. Commands with no
// store effect are counted, not failed: one unmatched "delete the gym task"
// must not lose the rest of the utterance.
func (uc *implUseCase) Materialize(ctx context.Context, sc model.Scope, input task.MaterializeInput) (task.MaterializeOutput, error) {
	if len(input.Commands) == 0 && len(input.Mutations) == 0 {
		return task.MaterializeOutput{}, task.ErrNoCommands
	}

	out := task.MaterializeOutput{TaskIDByCommandID: make(map[string]string)}

	for i := range input.Commands {
		cmd := &input.Commands[i]

		switch cmd.Intent {
		case voice.IntentTask, voice.IntentReminder, voice.IntentNote, voice.IntentSchedule:
			t, err := uc.createFromCommand(ctx, cmd)
			if err != nil {
				return task.MaterializeOutput{}, fmt.Errorf("create task for %q: %w", cmd.Text, err)
			}
			out.Tasks = append(out.Tasks, t)
			if cmd.ID != "" {
				out.TaskIDByCommandID[cmd.ID] = t.ID
			}

		case voice.IntentComplete:
			t, ok := uc.completeByTitle(ctx, cmd)
			if !ok {
				out.Skipped++
				continue
			}
			out.Tasks = append(out.Tasks, t)

		case voice.IntentDelete:
			if !uc.deleteByTitle(ctx, cmd) {
				out.Skipped++
				continue
			}

		default:
			// findTime and unknown have no store effect; the caller still
			// sees them in the command list.
			out.Skipped++
		}
	}

	for _, m := range input.Mutations {
		t, err := uc.applyMutation(ctx, m)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				uc.l.Warnf(ctx, "Materialize: mutation target %s gone, skipping", m.TargetID)
				out.Skipped++
				continue
			}
			return task.MaterializeOutput{}, fmt.Errorf("apply mutation to %s: %w", m.TargetID, err)
		}
		out.Tasks = append(out.Tasks, t)
	}

	uc.l.Infof(ctx, "Materialize: user=%s tasks=%d skipped=%d", sc.UserID, len(out.Tasks), out.Skipped)
	return out, nil
}

func (uc *implUseCase) createFromCommand(ctx context.Context, cmd *voice.StructuredCommand) (model.Task, error) {
	d := cmd.Data()

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = strings.TrimSpace(cmd.Text)
	}

	var due *time.Time
	if d.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, d.DueDate)
		if err != nil {
			uc.l.Warnf(ctx, "Materialize: unparseable due date %q on %q, storing undated", d.DueDate, title)
		} else {
			due = &parsed
		}
	}

	attendees := make([]string, 0, len(d.Attendees))
	for _, a := range d.Attendees {
		if a.Email != "" {
			attendees = append(attendees, a.Email)
		}
	}

	opt := repository.CreateTaskOptions{
		Title:     title,
		Notes:     cmd.Text,
		DueDate:   due,
		Priority:  d.Priority,
		Reminders: d.Reminders,
		Attendees: attendees,
	}
	opt.CalendarLink = uc.trySyncCalendarEvent(ctx, opt, d)

	return uc.repo.Create(ctx, opt)
}

func (uc *implUseCase) completeByTitle(ctx context.Context, cmd *voice.StructuredCommand) (model.Task, bool) {
	t, err := uc.findTarget(ctx, cmd)
	if err != nil {
		uc.l.Warnf(ctx, "Materialize: no task matches complete %q", cmd.Text)
		return model.Task{}, false
	}

	t.Completed = true
	updated, err := uc.repo.Update(ctx, t)
	if err != nil {
		uc.l.Errorf(ctx, "Materialize: complete %s failed: %v", t.ID, err)
		return model.Task{}, false
	}
	return updated, true
}

func (uc *implUseCase) deleteByTitle(ctx context.Context, cmd *voice.StructuredCommand) bool {
	t, err := uc.findTarget(ctx, cmd)
	if err != nil {
		uc.l.Warnf(ctx, "Materialize: no task matches delete %q", cmd.Text)
		return false
	}
	if err := uc.repo.Delete(ctx, t.ID); err != nil {
		uc.l.Errorf(ctx, "Materialize: delete %s failed: %v", t.ID, err)
		return false
	}
	return true
}

func (uc *implUseCase) findTarget(ctx context.Context, cmd *voice.StructuredCommand) (model.Task, error) {
	title := cmd.Text
	if cmd.ExtractedData != nil && cmd.ExtractedData.Title != "" {
		title = cmd.ExtractedData.Title
	}
	return uc.repo.FindByTitle(ctx, title)
}

func (uc *implUseCase) applyMutation(ctx context.Context, m task.Mutation) (model.Task, error) {
	t, err := uc.repo.Get(ctx, m.TargetID)
	if err != nil {
		return model.Task{}, err
	}

	if m.Title != "" {
		t.Title = m.Title
	}
	if len(m.Reminders) > 0 {
		t.Reminders = reminder.Merge(t.Reminders, m.Reminders)
	}

	return uc.repo.Update(ctx, t)
}
