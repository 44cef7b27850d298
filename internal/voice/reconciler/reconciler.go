package reconciler

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"voicetask/internal/voice"
	"voicetask/internal/voice/reminder"
	"voicetask/pkg/temporal"
)

// Mutation is a merge instruction targeting a task materialized in a prior
// batch. The reconciler cannot apply it itself; the caller owns that state.
type Mutation struct {
	TargetID  string
	Title     string
	Reminders []int
}

// Result is the reconciled output for one batch.
type Result struct {
	// Commands in original fragment order, each with an assigned ID.
	Commands []voice.StructuredCommand
	// LastScheduledID points at the most recent command with a due instant,
	// carried across batches by the caller.
	LastScheduledID string
	// Mutations target prior-batch tasks.
	Mutations []Mutation
}

// Reconciler merges per-fragment resolution results into the final ordered
// command list, resolving forward and backward references within a batch.
type Reconciler struct {
	temporal *temporal.Resolver
}

func New(tr *temporal.Resolver) *Reconciler {
	return &Reconciler{temporal: tr}
}

// Reconcile processes commands in original order. Fragments flagged
// applyToLastScheduled, and bare reminders with no schedule of their own,
// merge into the nearest scheduled target instead of emitting; reminders with
// no target yet are stashed and attached to the next genuine command.
func (r *Reconciler) Reconcile(commands []voice.StructuredCommand, transcript, lastScheduledID string, now time.Time) Result {
	out := Result{LastScheduledID: lastScheduledID}

	var pendingReminders []int
	baseDate := r.inferBaseDate(transcript, now)
	pmCue := hasPMCue(transcript)

	// Index into out.Commands of the last emitted command with a due instant.
	lastScheduledIdx := -1

	for i := range commands {
		cmd := commands[i]
		d := cmd.Data()

		if isMutationFragment(&cmd) {
			if lastScheduledIdx >= 0 {
				mergeInto(out.Commands[lastScheduledIdx].Data(), &cmd)
			} else if out.LastScheduledID != "" {
				out.Mutations = append(out.Mutations, Mutation{
					TargetID:  out.LastScheduledID,
					Title:     mutationTitle(&cmd),
					Reminders: d.Reminders,
				})
			} else {
				pendingReminders = reminder.Merge(pendingReminders, d.Reminders)
			}
			continue
		}

		if len(pendingReminders) > 0 {
			d.Reminders = reminder.Merge(d.Reminders, pendingReminders)
			pendingReminders = nil
		}

		r.backfillDate(d, &cmd, out.Commands, baseDate, pmCue)

		cmd.ID = uuid.NewString()
		out.Commands = append(out.Commands, cmd)

		if d.DueDate != "" {
			lastScheduledIdx = len(out.Commands) - 1
			out.LastScheduledID = cmd.ID
		}
	}

	// Reminders that never found an in-batch target still attach to the
	// prior batch's item when one exists.
	if len(pendingReminders) > 0 && out.LastScheduledID != "" && lastScheduledIdx < 0 {
		out.Mutations = append(out.Mutations, Mutation{
			TargetID:  out.LastScheduledID,
			Reminders: pendingReminders,
		})
	}

	return out
}

// isMutationFragment reports whether the command mutates an earlier item
// instead of materializing as its own task.
func isMutationFragment(cmd *voice.StructuredCommand) bool {
	d := cmd.ExtractedData
	if d == nil {
		return false
	}
	if d.ApplyToLastScheduled {
		return true
	}
	return cmd.Intent == voice.IntentReminder && len(d.Reminders) > 0 && !cmd.HasSchedulingData()
}

// mergeInto applies a mutation fragment's data to its target: title
// overwrites when the fragment carries a genuine rename, reminders union.
func mergeInto(target *voice.ExtractedData, src *voice.StructuredCommand) {
	if title := mutationTitle(src); title != "" {
		target.Title = title
	}
	if d := src.ExtractedData; d != nil && len(d.Reminders) > 0 {
		target.Reminders = reminder.Merge(target.Reminders, d.Reminders)
	}
}

// mutationTitle returns the rename a mutation fragment carries, if any. A
// title equal to the fragment's own text is an echo of the utterance, not
// a rename, and must not overwrite the target's title.
func mutationTitle(src *voice.StructuredCommand) string {
	d := src.ExtractedData
	if d == nil || d.Title == "" {
		return ""
	}
	if strings.EqualFold(strings.TrimSpace(d.Title), strings.TrimSpace(src.Text)) {
		return ""
	}
	return d.Title
}

// backfillDate fills a missing date on a command that has a time, preferring
// the date of the most recent emitted scheduled command, then the batch base
// date. The due instant is (re)composed whenever both halves are present.
func (r *Reconciler) backfillDate(d *voice.ExtractedData, cmd *voice.StructuredCommand, emitted []voice.StructuredCommand, baseDate string, pmCue bool) {
	if d.Date == "" && d.Time != "" {
		for i := len(emitted) - 1; i >= 0; i-- {
			if prev := emitted[i].ExtractedData; prev != nil && prev.Date != "" {
				d.Date = prev.Date
				break
			}
		}
		if d.Date == "" {
			d.Date = baseDate
		}

		// A pm cue anywhere in the transcript disambiguates bare hours
		// picked up without a meridiem marker.
		if d.Date != "" && pmCue && !hasMeridiem(cmd.Text) {
			d.Time = biasPM(d.Time)
		}
	}

	if d.Date != "" && d.Time != "" {
		if due, err := r.temporal.ComposeDueDate(d.Date, d.Time); err == nil {
			d.DueDate = due
		}
	}
}

// inferBaseDate derives the batch-wide fallback date from day words in the
// full transcript, in the zone now carries. Empty when the transcript names
// no day.
func (r *Reconciler) inferBaseDate(transcript string, now time.Time) string {
	lower := strings.ToLower(transcript)

	switch {
	case strings.Contains(lower, "today") || strings.Contains(lower, "tonight"):
		return now.Format(temporal.DateFormatISO)
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format(temporal.DateFormatISO)
	}
	return ""
}

var rePMCue = regexp.MustCompile(`(?i)\bp\.?m\.?\b`)
var reMeridiem = regexp.MustCompile(`(?i)\b[ap]\.?m\.?\b`)

func hasPMCue(text string) bool    { return rePMCue.MatchString(text) }
func hasMeridiem(text string) bool { return reMeridiem.MatchString(text) }

// biasPM shifts hours 1-11 into the afternoon. Hours 12-23 pass through.
func biasPM(clock string) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 11 {
		return clock
	}
	return strconv.Itoa(hour+12) + ":" + parts[1]
}
