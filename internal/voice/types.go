package voice

// Intent classifies what a parsed voice command asks for.
type Intent string

const (
	IntentTask     Intent = "task"
	IntentReminder Intent = "reminder"
	IntentNote     Intent = "note"
	IntentSchedule Intent = "schedule"
	IntentFindTime Intent = "findTime"
	IntentDelete   Intent = "delete"
	IntentComplete Intent = "complete"
	IntentUnknown  Intent = "unknown"
)

// Attendee is a calendar event participant.
type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// ExtractedData carries the structured payload of a parsed command.
type ExtractedData struct {
	Title string `json:"title,omitempty"`

	// Date (YYYY-MM-DD) and Time (HH:mm, 24-hour) are local to the user.
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	// DueDate is the composed RFC3339 instant. When supplied by the LLM it
	// is advisory only: Date and Time take precedence when composing the
	// final instant so server timezone skew cannot shift the task.
	DueDate string `json:"dueDate,omitempty"`

	Priority string `json:"priority,omitempty"` // low | medium | high

	// Reminders is always sorted ascending with no duplicates.
	Reminders []int `json:"reminders,omitempty"`

	// ApplyToLastScheduled marks this fragment as a mutation of the most
	// recently scheduled command rather than a new task.
	ApplyToLastScheduled bool `json:"applyToLastScheduled,omitempty"`

	Attendees []Attendee `json:"attendees,omitempty"`
}

// StructuredCommand is the canonical parsed-intent output unit.
type StructuredCommand struct {
	ID            string         `json:"id,omitempty"` // assigned on emit by the reconciler
	Text          string         `json:"text"`         // original fragment text, kept for audit
	Intent        Intent         `json:"intent"`
	Confidence    float64        `json:"confidence"`
	ExtractedData *ExtractedData `json:"extractedData,omitempty"`
	Note          string         `json:"note,omitempty"` // diagnostic, e.g. fallback reason
}

// Data returns the command's extracted data, allocating it on first use.
func (c *StructuredCommand) Data() *ExtractedData {
	if c.ExtractedData == nil {
		c.ExtractedData = &ExtractedData{}
	}
	return c.ExtractedData
}

// HasSchedulingData reports whether the command carries any date or time
// signal of its own.
func (c *StructuredCommand) HasSchedulingData() bool {
	d := c.ExtractedData
	return d != nil && (d.Date != "" || d.Time != "" || d.DueDate != "")
}

// ResolveInput is the input to the resolution pipeline.
type ResolveInput struct {
	Transcript string
	SessionID  string
	// DryRun resolves and reconciles without materializing tasks.
	DryRun bool
}

// ResolveOutput is the result of one transcript resolution.
type ResolveOutput struct {
	Commands []StructuredCommand
	// LastScheduledID is the updated cross-batch pointer for the session.
	LastScheduledID string
	// Tasks created or updated during materialization (empty on dry run).
	TaskIDs []string
}
