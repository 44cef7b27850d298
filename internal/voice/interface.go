package voice

import (
	"context"

	"voicetask/internal/model"
)

// UseCase defines the business logic interface for the voice domain.
type UseCase interface {
	// Resolve runs the full pipeline on one transcript: split, normalize,
	// resolve each fragment, reconcile the batch, and (unless DryRun)
	// materialize the resulting commands as tasks.
	Resolve(ctx context.Context, sc model.Scope, input ResolveInput) (ResolveOutput, error)
}
