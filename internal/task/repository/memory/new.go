package memory

import (
	"sync"

	"voicetask/internal/model"
)

// Repository is an in-memory TaskRepository. Persistence is owned by an
// external collaborator in this system; this store backs local operation
// and tests.
type Repository struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
	order []string // insertion order of ids
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{tasks: make(map[string]model.Task)}
}
