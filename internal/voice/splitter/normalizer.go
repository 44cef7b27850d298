package splitter

import (
	"regexp"
	"strings"
)

// The LLM resolver sees one fragment at a time with no shared memory, so
// each fragment must carry enough context to be parsed in isolation. The
// normalizer injects an inferred action verb and/or a base noun borrowed
// from the parent utterance.

var actionVerbs = map[string]bool{
	"add": true, "create": true, "schedule": true, "remind": true,
	"note": true, "delete": true, "remove": true, "cancel": true,
	"complete": true, "finish": true, "set": true, "make": true,
	"book": true, "find": true, "move": true, "reschedule": true,
}

// calendarNouns imply a datable event; borrowing one of these makes
// "schedule" the natural verb.
var calendarNouns = map[string]bool{
	"appointment": true, "meeting": true, "event": true,
}

var (
	reBaseNoun = regexp.MustCompile(`(?i)\b(appointment|meeting|event|reminder|task|call)\b`)

	// Openers that reference a previously mentioned noun-type: "another X",
	// a weekday, "at <time>", "tomorrow", "today", "next <unit>".
	reRefOpener = regexp.MustCompile(`(?i)^(another\b|at\s+\d|tomorrow\b|today\b|tonight\b|next\s+\w+|sunday\b|monday\b|tuesday\b|wednesday\b|thursday\b|friday\b|saturday\b)`)

	reTimeExpr = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}|\d{1,2}\s*[ap]\.?m\.?|\bat\s+\d{1,2}\b|\d{1,2}\s+o'?clock|\btomorrow\b|\btoday\b|\btonight\b|\bsunday\b|\bmonday\b|\btuesday\b|\bwednesday\b|\bthursday\b|\bfriday\b|\bsaturday\b)`)
)

// Normalize rewrites each fragment into an imperative-style command string.
// The parent transcript supplies the base noun for fragments that only
// reference it ("another appointment at 2" becomes "schedule appointment
// at 2").
func Normalize(fragments []Fragment, transcript string) []Fragment {
	baseNoun := extractBaseNoun(transcript)

	out := make([]Fragment, len(fragments))
	for i, f := range fragments {
		out[i] = Fragment{
			Text:        normalizeOne(f.Text, baseNoun),
			SourceIndex: f.SourceIndex,
		}
	}
	return out
}

func normalizeOne(text, baseNoun string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return trimmed
	}

	if startsWithActionVerb(trimmed) {
		return trimmed
	}

	if baseNoun != "" && reRefOpener.MatchString(trimmed) {
		rest := stripLeadingAnother(trimmed)
		// Prepend the borrowed noun unless the fragment already names one.
		if !reBaseNoun.MatchString(rest) {
			rest = baseNoun + " " + rest
		}
		verb := "add"
		if calendarNouns[baseNoun] && reTimeExpr.MatchString(rest) {
			verb = "schedule"
		}
		return verb + " " + rest
	}

	// No noun context and no command verb: default to "add".
	return "add " + trimmed
}

func startsWithActionVerb(text string) bool {
	fields := strings.Fields(strings.ToLower(text))
	return len(fields) > 0 && actionVerbs[strings.TrimRight(fields[0], ",.")]
}

func stripLeadingAnother(text string) string {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "another ") {
		return strings.TrimSpace(text[len("another "):])
	}
	return text
}

// extractBaseNoun picks the first calendar-ish noun of the transcript; it
// becomes the noun injected into noun-less fragments.
func extractBaseNoun(transcript string) string {
	if m := reBaseNoun.FindString(transcript); m != "" {
		return strings.ToLower(m)
	}
	return ""
}
