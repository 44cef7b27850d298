package resolver

import (
	"regexp"
	"strings"
	"time"

	"voicetask/internal/voice"
	"voicetask/internal/voice/reminder"
)

// Heuristic resolves a fragment without the LLM: deterministic temporal and
// reminder extraction plus keyword intent classification. Confidence is fixed
// at the mid-scale value since keyword matching cannot rank alternatives.
func (r *Resolver) Heuristic(text string, now time.Time) voice.StructuredCommand {
	res := r.temporal.Resolve(text, now)
	offsets := reminder.Extract(text)

	d := &voice.ExtractedData{
		Title:     cleanTitle(text),
		Date:      res.Date,
		Time:      res.Time,
		Reminders: offsets.Minutes,
	}

	if res.HasDate() && res.HasTime() {
		if due, err := r.temporal.ComposeDueDate(res.Date, res.Time); err == nil {
			d.DueDate = due
		}
	}

	// A reminder that points back at an earlier item and carries no schedule
	// of its own is a mutation of that item, not a new task. A title for the
	// fragment itself is then just the reminder phrase, never a rename.
	if len(offsets.Minutes) > 0 && offsets.RefersBack && !res.HasDate() && !res.HasTime() {
		d.ApplyToLastScheduled = true
		if d.Title == strings.TrimSpace(text) {
			d.Title = ""
		}
	}

	intent := classifyIntent(text, res.HasDate() || res.HasTime(), len(offsets.Minutes) > 0)

	confidence := 0.5
	if intent == voice.IntentUnknown {
		confidence = 0.3
	}

	return voice.StructuredCommand{
		Text:          text,
		Intent:        intent,
		Confidence:    confidence,
		ExtractedData: d,
		Note:          "heuristic",
	}
}

// intentKeywords maps trigger words to intents, checked in order so the more
// specific verbs win over the generic ones.
var intentKeywords = []struct {
	words  []string
	intent voice.Intent
}{
	{[]string{"delete", "remove", "cancel"}, voice.IntentDelete},
	{[]string{"complete", "finish", "mark as done", "i'm done with", "done with"}, voice.IntentComplete},
	{[]string{"find time", "find a time", "when can i", "free slot"}, voice.IntentFindTime},
	{[]string{"note", "remember", "write down", "jot down"}, voice.IntentNote},
	{[]string{"remind"}, voice.IntentReminder},
	{[]string{"schedule", "appointment", "meeting", "event", "book"}, voice.IntentSchedule},
	{[]string{"add", "create", "task", "todo", "to-do"}, voice.IntentTask},
}

func classifyIntent(text string, hasSchedule, hasReminders bool) voice.Intent {
	lower := strings.ToLower(text)

	for _, entry := range intentKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				// "remind me 30 minutes before my meeting" is still a
				// reminder even though "meeting" appears later.
				return entry.intent
			}
		}
	}

	if hasReminders {
		return voice.IntentReminder
	}
	if hasSchedule {
		return voice.IntentSchedule
	}
	return voice.IntentUnknown
}

var titleStrippers = []*regexp.Regexp{
	// Leading command verbs, optionally politeness-prefixed.
	regexp.MustCompile(`(?i)^(please\s+)?(add|create|schedule|set up|make|book|note down|note|remember to|remember|remind me to|remind me|delete|remove|cancel|complete|finish)\s+(a\s+|an\s+|the\s+)?`),
	// Reminder offset phrases.
	regexp.MustCompile(`(?i)\b(and\s+)?remind me\b.*$`),
	regexp.MustCompile(`(?i)\b(half an hour|quarter(\s+of an)?\s+hour|an?\s+hour|\d+\s*(minutes?|mins?|hours?|hrs?))\s+(before|beforehand|ahead of time|in advance|prior)\b.*$`),
	// Clock times.
	regexp.MustCompile(`(?i)\b(at\s+)?\d{1,2}(:\d{2})?\s*[ap]\.?m\.?\b`),
	regexp.MustCompile(`(?i)\b(at\s+)?\d{1,2}:\d{2}\b`),
	regexp.MustCompile(`(?i)\b(at\s+)?\d{1,2}\s+o'?clock\b`),
	regexp.MustCompile(`(?i)\bat\s+\d{1,2}\b`),
	// Dates and day words.
	regexp.MustCompile(`(?i)\b(on\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	regexp.MustCompile(`(?i)\b(tomorrow|today|tonight)\b`),
	regexp.MustCompile(`(?i)\bnext\s+(week|month|year)\b`),
	regexp.MustCompile(`(?i)\b(in|after)\s+\d+\s+(minutes?|mins?|hours?|hrs?|days?|weeks?)\b`),
	regexp.MustCompile(`(?i)\b(on\s+)?(january|jan|february|feb|march|mar|april|apr|may|june|jun|july|jul|august|aug|september|sep|october|oct|november|nov|december|dec)\s+\d{1,2}(st|nd|rd|th)?\b`),
	regexp.MustCompile(`(?i)\b(this|in the)\s+(morning|afternoon|evening)\b`),
	regexp.MustCompile(`(?i)\b(morning|afternoon|evening)\b`),
}

var reSpaces = regexp.MustCompile(`\s{2,}`)

// cleanTitle strips command verbs and temporal phrases, leaving the human
// label. Falls back to the trimmed input when stripping consumes everything.
func cleanTitle(text string) string {
	title := text
	for _, re := range titleStrippers {
		title = re.ReplaceAllString(title, " ")
	}

	title = reSpaces.ReplaceAllString(title, " ")
	title = strings.Trim(title, " \t,.;:!?-")

	// Dangling connectors left at either edge after stripping.
	title = strings.TrimPrefix(title, "and ")
	title = strings.TrimSuffix(title, " and")
	title = strings.TrimSpace(title)

	if title == "" {
		return strings.TrimSpace(text)
	}
	return title
}
