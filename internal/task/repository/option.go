package repository

import "time"

// CreateTaskOptions holds the parameters for creating a task.
type CreateTaskOptions struct {
	Title        string
	Notes        string
	DueDate      *time.Time
	Priority     string // "low" | "medium" | "high", empty allowed
	Reminders    []int  // minutes before DueDate
	Attendees    []string
	CalendarLink string
}

// ListTasksOptions holds the parameters for listing tasks.
type ListTasksOptions struct {
	IncludeCompleted bool
	Limit            int // default 20
	Offset           int
}
