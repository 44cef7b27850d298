package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicetask/internal/model"
	"voicetask/internal/session"
	taskRepo "voicetask/internal/task/repository"
	"voicetask/internal/task/repository/memory"
	taskUC "voicetask/internal/task/usecase"
	"voicetask/internal/voice"
	"voicetask/internal/voice/resolver"
	"voicetask/pkg/log"
	"voicetask/pkg/temporal"
)

// newOfflinePipeline wires the full pipeline with no LLM: deterministic
// heuristic resolution end to end.
func newOfflinePipeline(t *testing.T) (*implUseCase, *memory.Repository) {
	t.Helper()

	tr, err := temporal.NewResolver("UTC")
	require.NoError(t, err)

	repo := memory.New()
	tasks := taskUC.New(log.NewNop(), repo, nil, "primary", "UTC")
	res := resolver.New(log.NewNop(), tr, nil, resolver.Options{})
	sessions := session.NewStore(16, time.Minute)

	return New(log.NewNop(), tr, res, sessions, tasks, 16), repo
}

func TestResolve_EndToEndOffline(t *testing.T) {
	uc, _ := newOfflinePipeline(t)
	ctx := context.Background()
	sc := model.Scope{UserID: "u1"}

	out, err := uc.Resolve(ctx, sc, voice.ResolveInput{
		Transcript: "schedule dentist appointment tomorrow at 2 pm and remind me 30 minutes before that appointment",
		SessionID:  "s1",
	})
	require.NoError(t, err)

	// The reminder fragment merged into the scheduled one.
	require.Len(t, out.Commands, 1)
	d := out.Commands[0].ExtractedData
	require.NotNil(t, d)
	assert.Equal(t, "dentist appointment", d.Title)
	assert.Equal(t, "14:00", d.Time)
	assert.Equal(t, []int{30}, d.Reminders)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(temporal.DateFormatISO)
	assert.Equal(t, tomorrow, d.Date)

	require.Len(t, out.TaskIDs, 1)
	assert.Equal(t, out.TaskIDs[0], out.LastScheduledID)
}

func TestResolve_CrossBatchReminderMutation(t *testing.T) {
	uc, repo := newOfflinePipeline(t)
	ctx := context.Background()
	sc := model.Scope{UserID: "u1"}

	first, err := uc.Resolve(ctx, sc, voice.ResolveInput{
		Transcript: "schedule team standup tomorrow at 9 am",
		SessionID:  "s1",
	})
	require.NoError(t, err)
	require.Len(t, first.TaskIDs, 1)

	second, err := uc.Resolve(ctx, sc, voice.ResolveInput{
		Transcript: "remind me 10 minutes before that meeting",
		SessionID:  "s1",
	})
	require.NoError(t, err)

	// No new task; the reminder landed on the prior batch's task.
	assert.Empty(t, second.Commands)
	require.Len(t, second.TaskIDs, 1)
	assert.Equal(t, first.TaskIDs[0], second.TaskIDs[0])

	stored, err := repo.Get(ctx, first.TaskIDs[0])
	require.NoError(t, err)
	assert.Equal(t, []int{10}, stored.Reminders)
	// The reminder phrase must not have renamed the task.
	assert.Equal(t, "team standup", stored.Title)
}

func TestResolve_ScopeTimezoneAnchorsResolution(t *testing.T) {
	uc, _ := newOfflinePipeline(t)

	loc, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)

	out, err := uc.Resolve(context.Background(), model.Scope{UserID: "u1", Timezone: "Pacific/Kiritimati"}, voice.ResolveInput{
		Transcript: "add buy milk today at 5 pm",
		SessionID:  "s-tz",
		DryRun:     true,
	})
	require.NoError(t, err)

	// "today" is the caller's today, not the server's.
	require.Len(t, out.Commands, 1)
	want := time.Now().In(loc).Format(temporal.DateFormatISO)
	assert.Equal(t, want, out.Commands[0].ExtractedData.Date)
}

func TestResolve_InvalidScopeTimezoneFallsBack(t *testing.T) {
	uc, _ := newOfflinePipeline(t)

	out, err := uc.Resolve(context.Background(), model.Scope{UserID: "u1", Timezone: "Not/AZone"}, voice.ResolveInput{
		Transcript: "add buy milk today at 5 pm",
		SessionID:  "s-tz-bad",
		DryRun:     true,
	})
	require.NoError(t, err)

	require.Len(t, out.Commands, 1)
	want := time.Now().UTC().Format(temporal.DateFormatISO)
	assert.Equal(t, want, out.Commands[0].ExtractedData.Date)
}

func TestResolve_DryRunDoesNotMaterialize(t *testing.T) {
	uc, repo := newOfflinePipeline(t)

	out, err := uc.Resolve(context.Background(), model.Scope{}, voice.ResolveInput{
		Transcript: "schedule dentist tomorrow at 2 pm",
		SessionID:  "s1",
		DryRun:     true,
	})
	require.NoError(t, err)

	require.Len(t, out.Commands, 1)
	assert.Empty(t, out.TaskIDs)

	tasks, _, err := repo.List(context.Background(), taskRepo.ListTasksOptions{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestResolve_EmptyTranscript(t *testing.T) {
	uc, _ := newOfflinePipeline(t)

	_, err := uc.Resolve(context.Background(), model.Scope{}, voice.ResolveInput{Transcript: "  "})
	assert.ErrorIs(t, err, voice.ErrEmptyTranscript)
}

func TestResolve_CacheSurvivesReconciliation(t *testing.T) {
	uc, _ := newOfflinePipeline(t)
	ctx := context.Background()
	sc := model.Scope{}
	in := voice.ResolveInput{
		Transcript: "schedule dentist tomorrow at 2 pm and remind me 30 minutes before that appointment",
		SessionID:  "s-cache",
		DryRun:     true,
	}

	first, err := uc.Resolve(ctx, sc, in)
	require.NoError(t, err)

	// A second pass reads the cached resolution; reconciliation of the
	// first pass must not have leaked merged reminders into the cache.
	second, err := uc.Resolve(ctx, sc, in)
	require.NoError(t, err)

	require.Len(t, second.Commands, len(first.Commands))
	assert.Equal(t, first.Commands[0].ExtractedData.Reminders, second.Commands[0].ExtractedData.Reminders)
}
