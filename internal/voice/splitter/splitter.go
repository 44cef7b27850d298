// Package splitter segments one spoken transcript into independently
// resolvable command fragments and rewrites each into a self-contained
// imperative string.
//
// A single regex cannot safely separate multi-command speech: natural time
// expressions contain separator-like tokens (commas in spoken times, "and"
// inside "10:30 and 2 o'clock"). The splitter therefore runs a staged,
// conservative pass with a residue cleanup at the end.
package splitter

import (
	"regexp"
	"strings"
)

// Fragment is one candidate independent command extracted from a transcript.
type Fragment struct {
	Text        string
	SourceIndex int // position within the batch, drives ordering downstream
}

// Connector phrases, longest first so ", and " wins over ", " and " and ".
var connectors = []string{
	", and ",
	" and then ",
	" also ",
	" plus ",
	" and ",
	", ",
	" & ",
	" then ",
}

var (
	// Sentence boundary: punctuation, whitespace, then a capital letter.
	// Requiring the capital avoids breaking inside "2:00 p.m." style times.
	reSentenceEnd = regexp.MustCompile(`[.!?]\s+[A-Z]`)

	// Repeated-noun cue: users often omit "and" before the second command
	// ("schedule a meeting Friday another meeting Saturday").
	reAnotherNoun = regexp.MustCompile(`(?i)\banother\s+(appointment|meeting|event|reminder|task)\b`)
)

// residueWords are the tokens a fragment may consist of entirely and still
// carry no command ("and schedule it" is connector residue, not a command).
var residueWords = map[string]bool{
	"and": true, "also": true, "then": true, "plus": true, "&": true,
	"schedule": true, "add": true, "create": true, "set": true, "make": true,
	"it": true, "that": true, "this": true, "up": true,
	"a": true, "an": true, "the": true, "one": true,
}

// Split segments a transcript into ordered raw fragments. Stages run in
// sequence, each operating on the previous stage's output; the final pass
// drops pure connector residue.
func Split(transcript string) []Fragment {
	segments := []string{strings.TrimSpace(transcript)}

	for _, sep := range connectors {
		segments = splitAll(segments, sep)
	}
	segments = splitSentences(segments)
	segments = splitBeforeNounCues(segments)

	var fragments []Fragment
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" || isResidue(s) {
			continue
		}
		fragments = append(fragments, Fragment{Text: s, SourceIndex: len(fragments)})
	}
	return fragments
}

func splitAll(segments []string, sep string) []string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(sep))
	var out []string
	for _, s := range segments {
		for _, part := range re.Split(s, -1) {
			if strings.TrimSpace(part) != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func splitSentences(segments []string) []string {
	var out []string
	for _, s := range segments {
		start := 0
		for _, loc := range reSentenceEnd.FindAllStringIndex(s, -1) {
			// Cut after the punctuation, keeping the capital with the
			// following sentence.
			cut := loc[0] + 1
			out = append(out, s[start:cut])
			start = loc[1] - 1
		}
		out = append(out, s[start:])
	}
	return out
}

func splitBeforeNounCues(segments []string) []string {
	var out []string
	for _, s := range segments {
		locs := reAnotherNoun.FindAllStringIndex(s, -1)
		start := 0
		for _, loc := range locs {
			if loc[0] > start {
				out = append(out, s[start:loc[0]])
				start = loc[0]
			}
		}
		out = append(out, s[start:])
	}
	return out
}

func isResidue(s string) bool {
	s = strings.TrimRight(strings.ToLower(s), ".!?")
	for _, tok := range strings.Fields(s) {
		if !residueWords[tok] {
			return false
		}
	}
	return true
}
