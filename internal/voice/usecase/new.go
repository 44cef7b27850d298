package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"voicetask/internal/session"
	"voicetask/internal/task"
	"voicetask/internal/voice"
	"voicetask/internal/voice/reconciler"
	"voicetask/internal/voice/resolver"
	pkgLog "voicetask/pkg/log"
	"voicetask/pkg/temporal"
)

const (
	defaultCacheSize = 256
	// Resolution results embed resolved dates, so cached entries must not
	// outlive the day words they were resolved against.
	resolutionCacheTTL = 2 * time.Minute
)

type implUseCase struct {
	l          pkgLog.Logger
	temporal   *temporal.Resolver
	resolver   *resolver.Resolver
	reconciler *reconciler.Reconciler
	sessions   *session.Store
	tasks      task.UseCase

	// cache keys transcripts to their per-fragment resolution, short-lived
	// to absorb client retries without re-spending LLM calls.
	cache *expirable.LRU[string, []voice.StructuredCommand]
}

// New creates the voice resolution UseCase.
func New(
	l pkgLog.Logger,
	tr *temporal.Resolver,
	res *resolver.Resolver,
	sessions *session.Store,
	tasks task.UseCase,
	cacheSize int,
) *implUseCase {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	return &implUseCase{
		l:          l,
		temporal:   tr,
		resolver:   res,
		reconciler: reconciler.New(tr),
		sessions:   sessions,
		tasks:      tasks,
		cache:      expirable.NewLRU[string, []voice.StructuredCommand](cacheSize, nil, resolutionCacheTTL),
	}
}
