package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicetask/internal/voice"
	"voicetask/internal/voice/splitter"
	"voicetask/pkg/llmprovider"
	"voicetask/pkg/log"
	"voicetask/pkg/temporal"
)

type fakeLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []*llmprovider.Request
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}

	idx := len(f.requests) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return &llmprovider.Response{
		Text:         f.responses[idx],
		ProviderName: "fake",
		ModelName:    "fake-1",
	}, nil
}

func newLLMResolver(t *testing.T, llm LLMClient) *Resolver {
	t.Helper()
	tr, err := temporal.NewResolver("UTC")
	require.NoError(t, err)
	return New(log.NewNop(), tr, llm, Options{MaxConcurrency: 4})
}

func TestResolveFragment_ValidResponse(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		`{"intent":"schedule","confidence":0.92,"extractedData":{"title":"dentist visit","date":"2026-03-11","time":"14:00"}}`,
	}}
	r := newLLMResolver(t, llm)

	cmd := r.ResolveFragment(context.Background(), "schedule dentist visit tomorrow at 2 pm", testNow)

	assert.Equal(t, voice.IntentSchedule, cmd.Intent)
	assert.Equal(t, 0.92, cmd.Confidence)
	assert.Equal(t, "dentist visit", cmd.ExtractedData.Title)
	// Date and time get composed into a due instant even though the model
	// did not supply one.
	assert.Equal(t, "2026-03-11T14:00:00Z", cmd.ExtractedData.DueDate)
	assert.Empty(t, cmd.Note)
}

func TestResolveFragment_BackfillsDateFromText(t *testing.T) {
	// Model omitted the date; the deterministic resolver must supply it.
	llm := &fakeLLM{responses: []string{
		`{"intent":"schedule","confidence":0.8,"extractedData":{"title":"team sync"}}`,
	}}
	r := newLLMResolver(t, llm)

	cmd := r.ResolveFragment(context.Background(), "schedule team sync on friday", testNow)

	assert.Equal(t, "2026-03-13", cmd.ExtractedData.Date)
}

func TestResolveFragment_RetryWithStrictInstruction(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		"I think the user wants to schedule something but I'm not sure how to format it",
		`{"intent":"task","confidence":0.7,"extractedData":{"title":"buy milk"}}`,
	}}
	r := newLLMResolver(t, llm)

	cmd := r.ResolveFragment(context.Background(), "add buy milk", testNow)

	assert.Equal(t, voice.IntentTask, cmd.Intent)
	assert.Equal(t, "buy milk", cmd.ExtractedData.Title)

	require.Len(t, llm.requests, 2)
	assert.False(t, strings.Contains(llm.requests[0].System, "JSON object ONLY"))
	assert.True(t, strings.Contains(llm.requests[1].System, "JSON object ONLY"))
}

func TestResolveFragment_FallsBackToHeuristic(t *testing.T) {
	llm := &fakeLLM{responses: []string{"garbage", "still garbage"}}
	r := newLLMResolver(t, llm)

	cmd := r.ResolveFragment(context.Background(), "schedule dentist tomorrow at 2 pm", testNow)

	assert.Equal(t, voice.IntentSchedule, cmd.Intent)
	assert.Equal(t, 0.5, cmd.Confidence)
	assert.Contains(t, cmd.Note, "llm fallback")
	assert.Equal(t, "2026-03-11", cmd.ExtractedData.Date)
	assert.Equal(t, "14:00", cmd.ExtractedData.Time)
}

func TestResolveFragment_NetworkErrorFallsBack(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}
	r := newLLMResolver(t, llm)

	cmd := r.ResolveFragment(context.Background(), "remind me 15 minutes before this appointment", testNow)

	assert.Equal(t, voice.IntentReminder, cmd.Intent)
	assert.Equal(t, []int{15}, cmd.ExtractedData.Reminders)
	assert.True(t, cmd.ExtractedData.ApplyToLastScheduled)
}

func TestResolveFragment_InvalidIntentNormalized(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		`{"intent":"banana","confidence":1.5,"extractedData":{"title":"x"}}`,
	}}
	r := newLLMResolver(t, llm)

	cmd := r.ResolveFragment(context.Background(), "x", testNow)

	assert.Equal(t, voice.IntentUnknown, cmd.Intent)
	assert.Equal(t, 1.0, cmd.Confidence)
}

func TestResolveBatch_PreservesOrder(t *testing.T) {
	r := newTestResolver(t) // heuristic-only keeps the test deterministic

	fragments := []splitter.Fragment{
		{Text: "schedule dentist tomorrow at 2 pm", SourceIndex: 0},
		{Text: "add buy milk", SourceIndex: 1},
		{Text: "remind me 30 minutes before that appointment", SourceIndex: 2},
	}

	cmds := r.ResolveBatch(context.Background(), fragments, testNow)

	require.Len(t, cmds, 3)
	assert.Equal(t, "schedule dentist tomorrow at 2 pm", cmds[0].Text)
	assert.Equal(t, "add buy milk", cmds[1].Text)
	assert.Equal(t, "remind me 30 minutes before that appointment", cmds[2].Text)
	assert.True(t, cmds[2].ExtractedData.ApplyToLastScheduled)
}
