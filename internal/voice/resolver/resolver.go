package resolver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"voicetask/internal/voice"
	"voicetask/internal/voice/splitter"
	"voicetask/pkg/llmprovider"
	"voicetask/pkg/log"
	"voicetask/pkg/temporal"
)

// LLMClient is the slice of the provider manager the resolver needs.
type LLMClient interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Resolver turns one normalized command fragment into a StructuredCommand.
// It consults the LLM when one is configured and always has a deterministic
// heuristic path, so a broken or absent model never fails a request.
type Resolver struct {
	l        log.Logger
	llm      LLMClient // nil means heuristic-only operation
	temporal *temporal.Resolver
	limiter  *rate.Limiter
	maxConc  int
}

// Options tunes the resolver's LLM usage.
type Options struct {
	// MaxConcurrency bounds concurrent per-fragment LLM calls. Zero or
	// negative means sequential.
	MaxConcurrency int
	// RatePerMinute caps LLM calls across all requests. Zero disables the cap.
	RatePerMinute int
}

// New builds a Resolver. Pass a nil client for fully offline operation.
func New(l log.Logger, tr *temporal.Resolver, llm LLMClient, opts Options) *Resolver {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RatePerMinute)/60.0), opts.RatePerMinute)
	}

	maxConc := opts.MaxConcurrency
	if maxConc <= 0 {
		maxConc = 1
	}

	return &Resolver{
		l:        l,
		llm:      llm,
		temporal: tr,
		limiter:  limiter,
		maxConc:  maxConc,
	}
}

// ResolveFragment resolves one fragment. It never returns an error: any LLM
// failure degrades to the heuristic resolver, which always produces a result.
func (r *Resolver) ResolveFragment(ctx context.Context, text string, now time.Time) voice.StructuredCommand {
	if r.llm == nil {
		return r.Heuristic(text, now)
	}

	cmd, err := r.resolveWithLLM(ctx, text, now)
	if err != nil {
		r.l.Warnf(ctx, "voice.resolver.ResolveFragment: llm path failed, using heuristic: %v", err)
		out := r.Heuristic(text, now)
		out.Note = fmt.Sprintf("llm fallback: %v", err)
		return out
	}

	return cmd
}

// ResolveBatch resolves fragments concurrently and returns results in the
// fragments' original order. Per-fragment failures degrade individually; the
// batch as a whole cannot fail.
func (r *Resolver) ResolveBatch(ctx context.Context, fragments []splitter.Fragment, now time.Time) []voice.StructuredCommand {
	results := make([]voice.StructuredCommand, len(fragments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConc)

	for i, frag := range fragments {
		i, frag := i, frag
		g.Go(func() error {
			results[i] = r.ResolveFragment(gctx, frag.Text, now)
			return nil
		})
	}

	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()

	return results
}

func (r *Resolver) resolveWithLLM(ctx context.Context, text string, now time.Time) (voice.StructuredCommand, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return voice.StructuredCommand{}, fmt.Errorf("rate limit wait: %w", err)
	}

	req := r.buildRequest(text, now, false)
	resp, err := r.llm.GenerateContent(ctx, req)
	if err != nil {
		return voice.StructuredCommand{}, fmt.Errorf("generate: %w", err)
	}

	payload, perr := parseCommandJSON(resp.Text)
	if perr != nil {
		r.l.Debugf(ctx, "voice.resolver: malformed response from %s, retrying with strict instruction: %v", resp.ProviderName, perr)

		retryReq := r.buildRequest(text, now, true)
		retryResp, rerr := r.llm.GenerateContent(ctx, retryReq)
		if rerr != nil {
			return voice.StructuredCommand{}, fmt.Errorf("retry generate: %w", rerr)
		}
		payload, perr = parseCommandJSON(retryResp.Text)
		if perr != nil {
			return voice.StructuredCommand{}, fmt.Errorf("parse after retry: %w", perr)
		}
	}

	cmd := payload.toCommand(text)
	r.postProcess(&cmd, text, now)
	return cmd, nil
}

// postProcess enforces the invariants the model is not trusted with: date
// grounding against the deterministic resolver, reminder ordering, and
// confidence bounds.
func (r *Resolver) postProcess(cmd *voice.StructuredCommand, text string, now time.Time) {
	d := cmd.Data()

	// The model frequently hallucinates or omits dates; cross-check weekday
	// and date phrases against the deterministic resolver.
	if d.Date == "" && d.DueDate == "" {
		if date, ok := r.temporal.ResolveDate(text, now); ok {
			d.Date = date
		}
	}

	if d.Time == "" {
		if res := r.temporal.Resolve(text, now); res.HasTime() {
			d.Time = res.Time
		}
	}

	// Date and Time dominate the advisory DueDate.
	if d.Date != "" && d.Time != "" {
		if due, err := r.temporal.ComposeDueDate(d.Date, d.Time); err == nil {
			d.DueDate = due
		}
	}

	if len(d.Reminders) > 0 {
		d.Reminders = dedupSorted(d.Reminders)
	}

	if cmd.Confidence < 0 {
		cmd.Confidence = 0
	}
	if cmd.Confidence > 1 {
		cmd.Confidence = 1
	}

	if !validIntent(cmd.Intent) {
		cmd.Intent = voice.IntentUnknown
	}
}

func validIntent(in voice.Intent) bool {
	switch in {
	case voice.IntentTask, voice.IntentReminder, voice.IntentNote, voice.IntentSchedule,
		voice.IntentFindTime, voice.IntentDelete, voice.IntentComplete, voice.IntentUnknown:
		return true
	}
	return false
}

func dedupSorted(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if v < 0 {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
