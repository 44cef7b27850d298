package task

import (
	"voicetask/internal/model"
	"voicetask/internal/voice"
)

// Mutation merges data into an already-stored task, typically one scheduled
// in a previous voice batch.
type Mutation struct {
	TargetID  string
	Title     string // overwrites when non-empty
	Reminders []int  // unioned into the target's reminders
}

// MaterializeInput carries one reconciled batch.
type MaterializeInput struct {
	Commands  []voice.StructuredCommand
	Mutations []Mutation
}

// MaterializeOutput reports what the batch did to the store.
type MaterializeOutput struct {
	// Tasks created or updated, in command order.
	Tasks []model.Task
	// TaskIDByCommandID maps a command's id to the task it created, used by
	// the caller to translate the batch's last-scheduled pointer into a
	// store id before carrying it across batches.
	TaskIDByCommandID map[string]string
	// Skipped counts commands with no store effect (findTime, unknown,
	// unmatched complete/delete targets).
	Skipped int
}

// ListInput filters the task listing.
type ListInput struct {
	IncludeCompleted bool
	Limit            int
	Offset           int
}

// ListOutput is a page of tasks.
type ListOutput struct {
	Tasks []model.Task
	Total int
}
