// Package reminder extracts reminder-offset phrases ("30 minutes before",
// "an hour beforehand") from free text.
package reminder

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Offsets is the result of scanning one fragment for reminder phrases.
type Offsets struct {
	// Minutes is the sorted, deduplicated list of minute offsets before
	// the due time. Nil when the fragment carries no reminder cue.
	Minutes []int

	// RefersBack reports whether the fragment back-references an already
	// scheduled item ("this appointment", "that meeting", "remind me").
	RefersBack bool
}

var (
	reMinutes   = regexp.MustCompile(`(?i)\b(\d+)\s*(?:minutes|minute|mins|min)\b`)
	reNumHours  = regexp.MustCompile(`(?i)\b(\d+)\s*(?:hours|hour|hrs|hr)\b`)
	reWordHours = regexp.MustCompile(`(?i)\b(?:an|a)\s+(?:hour|hr)\b`)
	reHalfHour  = regexp.MustCompile(`(?i)\bhalf\s+an?\s+hour\b`)
	reQuarter   = regexp.MustCompile(`(?i)\b(?:a\s+)?quarter\s+(?:of\s+an\s+)?hour\b`)
)

// cue words that mark a number as a reminder offset rather than a duration.
// "meeting for 30 minutes" is a duration; "30 minutes before" is a reminder.
var beforeCues = []string{"before", "beforehand", "ahead of", "prior to", "in advance"}

var backRefs = []string{
	"this appointment", "that appointment",
	"this meeting", "that meeting",
	"this event", "that event",
	"this task", "that task",
	"remind me",
}

// Extract scans text for reminder-offset phrases. Offsets accumulate across
// multiple forms in the same text ("30 minutes and an hour before" yields
// [30 60]). Bare numbers without a before-cue or back-reference are not
// reminders.
func Extract(text string) Offsets {
	lower := strings.ToLower(text)

	out := Offsets{RefersBack: containsAny(lower, backRefs)}
	if !containsAny(lower, beforeCues) && !out.RefersBack {
		return out
	}

	seen := map[int]bool{}
	add := func(minutes int) {
		if minutes > 0 && !seen[minutes] {
			seen[minutes] = true
			out.Minutes = append(out.Minutes, minutes)
		}
	}

	// Specific phrases first so their hour words are not double-counted
	// by the generic hour matchers.
	stripped := lower
	if reHalfHour.MatchString(stripped) {
		add(30)
		stripped = reHalfHour.ReplaceAllString(stripped, " ")
	}
	if reQuarter.MatchString(stripped) {
		add(15)
		stripped = reQuarter.ReplaceAllString(stripped, " ")
	}

	for _, m := range reMinutes.FindAllStringSubmatch(stripped, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			add(n)
		}
	}
	for _, m := range reNumHours.FindAllStringSubmatch(stripped, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			add(n * 60)
		}
	}
	if reWordHours.MatchString(stripped) {
		add(60)
	}

	sort.Ints(out.Minutes)
	return out
}

// Merge unions two offset lists, keeping the sorted-deduplicated invariant.
func Merge(a, b []int) []int {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := map[int]bool{}
	var out []int
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
