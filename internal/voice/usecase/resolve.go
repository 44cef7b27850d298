package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voicetask/internal/model"
	"voicetask/internal/task"
	"voicetask/internal/voice"
	"voicetask/internal/voice/splitter"
)

// Resolve runs the full pipeline for one transcript: split, normalize,
// resolve per fragment, reconcile against session state, and (unless
// DryRun) materialize the result.
func (uc *implUseCase) Resolve(ctx context.Context, sc model.Scope, input voice.ResolveInput) (voice.ResolveOutput, error) {
	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return voice.ResolveOutput{}, voice.ErrEmptyTranscript
	}

	// All temporal resolution below anchors to the zone now carries, so the
	// client's zone (when the scope names a valid one) takes effect here.
	now := time.Now().In(uc.locationFor(ctx, sc))

	resolved := uc.resolveFragments(ctx, transcript, now)
	if len(resolved) == 0 {
		return voice.ResolveOutput{}, voice.ErrNoCommands
	}

	lastID := uc.sessions.LastScheduled(input.SessionID)
	rec := uc.reconciler.Reconcile(resolved, transcript, lastID, now)

	uc.l.Infof(ctx, "voice.Resolve: user=%s session=%s fragments=%d commands=%d mutations=%d dry_run=%t",
		sc.UserID, input.SessionID, len(resolved), len(rec.Commands), len(rec.Mutations), input.DryRun)

	out := voice.ResolveOutput{
		Commands:        rec.Commands,
		LastScheduledID: rec.LastScheduledID,
	}

	if input.DryRun {
		return out, nil
	}

	if len(rec.Commands) == 0 && len(rec.Mutations) == 0 {
		return out, nil
	}

	mutations := make([]task.Mutation, 0, len(rec.Mutations))
	for _, m := range rec.Mutations {
		mutations = append(mutations, task.Mutation{
			TargetID:  m.TargetID,
			Title:     m.Title,
			Reminders: m.Reminders,
		})
	}

	mat, err := uc.tasks.Materialize(ctx, sc, task.MaterializeInput{
		Commands:  rec.Commands,
		Mutations: mutations,
	})
	if err != nil {
		return voice.ResolveOutput{}, fmt.Errorf("materialize batch: %w", err)
	}

	for _, t := range mat.Tasks {
		out.TaskIDs = append(out.TaskIDs, t.ID)
	}

	// Carry the last-scheduled pointer across batches as a store id so a
	// follow-up utterance can mutate the task it refers to.
	if taskID, ok := mat.TaskIDByCommandID[rec.LastScheduledID]; ok {
		out.LastScheduledID = taskID
	}
	uc.sessions.SetLastScheduled(input.SessionID, out.LastScheduledID)

	return out, nil
}

// locationFor picks the zone resolution runs in: the caller's zone when the
// scope names a valid IANA zone, otherwise the configured default.
func (uc *implUseCase) locationFor(ctx context.Context, sc model.Scope) *time.Location {
	if sc.Timezone == "" {
		return uc.temporal.Location()
	}
	loc, err := time.LoadLocation(sc.Timezone)
	if err != nil {
		uc.l.Warnf(ctx, "voice.Resolve: invalid timezone %q, using default: %v", sc.Timezone, err)
		return uc.temporal.Location()
	}
	return loc
}

// resolveFragments splits and resolves the transcript, consulting the
// short-lived resolution cache first. Resolved dates depend on the zone, so
// cache entries are keyed by zone and transcript together.
func (uc *implUseCase) resolveFragments(ctx context.Context, transcript string, now time.Time) []voice.StructuredCommand {
	key := now.Location().String() + "|" + transcript
	if cached, ok := uc.cache.Get(key); ok {
		uc.l.Debugf(ctx, "voice.Resolve: cache hit for transcript len=%d", len(transcript))
		return cloneCommands(cached)
	}

	fragments := splitter.Normalize(splitter.Split(transcript), transcript)
	if len(fragments) == 0 {
		return nil
	}

	resolved := uc.resolver.ResolveBatch(ctx, fragments, now)
	uc.cache.Add(key, cloneCommands(resolved))
	return resolved
}

// cloneCommands deep-copies commands so reconciliation cannot mutate cached
// entries.
func cloneCommands(in []voice.StructuredCommand) []voice.StructuredCommand {
	out := make([]voice.StructuredCommand, len(in))
	for i, cmd := range in {
		out[i] = cmd
		if cmd.ExtractedData != nil {
			data := *cmd.ExtractedData
			data.Reminders = append([]int(nil), cmd.ExtractedData.Reminders...)
			data.Attendees = append([]voice.Attendee(nil), cmd.ExtractedData.Attendees...)
			out[i].ExtractedData = &data
		}
	}
	return out
}
