package model

import "time"

// Task is a materialized task record produced from a structured voice
// command.
type Task struct {
	ID        string     // uuid
	Title     string
	Notes     string
	DueDate   *time.Time // nil for undated tasks
	Priority  string     // low | medium | high
	Reminders []int      // minutes before DueDate, sorted ascending
	Attendees []string   // attendee emails

	Completed    bool
	CalendarLink string // deep link to the synced calendar event, may be empty

	CreatedAt time.Time
	UpdatedAt time.Time
}
