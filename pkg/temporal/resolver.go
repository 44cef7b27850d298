package temporal

import (
	"fmt"
	"time"
)

// DateFormatISO is the wire format for resolved dates.
const DateFormatISO = "2006-01-02"

// ClockFormat is the wire format for resolved clock times.
const ClockFormat = "15:04"

// Resolver converts natural-language date/time phrases into calendar-local
// components. All resolution is relative to a caller-supplied "now" so the
// functions stay deterministic and testable.
type Resolver struct {
	location       *time.Location
	strictMeridiem bool
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithStrictMeridiem disables the PM bias for bare hours: "at 3" resolves
// to no time at all instead of 15:00. Colon forms ("14:30") still resolve.
func WithStrictMeridiem() Option {
	return func(r *Resolver) { r.strictMeridiem = true }
}

// NewResolver creates a resolver for the given IANA timezone string,
// e.g. "America/New_York".
func NewResolver(timezone string, opts ...Option) (*Resolver, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	r := &Resolver{location: loc}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Location returns the resolver's timezone.
func (r *Resolver) Location() *time.Location { return r.location }

// Resolve scans text for temporal signals and returns the date and time
// components. Matchers run in precedence order: an explicit calendar date
// beats a weekday name, which beats a relative offset, which beats the
// bare day words. Clock times beat relative minute/hour offsets, which
// beat named time-of-day defaults.
//
// Resolution is anchored to the zone now carries, so a caller resolving on
// behalf of a client in another zone passes now.In(clientZone). A bracketed
// hint in the text ("[tz:Area/City]" or "[utcoffset:-5]") overrides even
// that, for this call only.
func (r *Resolver) Resolve(text string, now time.Time) Resolution {
	loc, text := extractLocationHint(text, now.Location())
	now = now.In(loc)

	res := Resolution{}

	// Date channel.
	if d, ok := matchExplicitDate(text, now, loc); ok {
		res.Date, res.DateSource = d, SourceExplicitDate
	} else if d, ok := matchWeekday(text, now); ok {
		res.Date, res.DateSource = d, SourceWeekday
	} else if m, ok := matchRelativeOffset(text, now); ok {
		res.Date, res.DateSource = m.date, SourceRelative
		if m.clock != "" {
			res.Time, res.TimeSource = m.clock, TimeSourceRelative
		}
	} else if d, ok := matchDayWord(text, now); ok {
		res.Date, res.DateSource = d, SourceDayWord
	}

	// Time channel. Relative offsets above may already have set it.
	if res.Time == "" {
		if c, ok := matchClockTime(text, r.strictMeridiem); ok {
			res.Time, res.TimeSource = c, TimeSourceClock
		} else if c, ok := matchNamedTimeOfDay(text); ok {
			res.Time, res.TimeSource = c, TimeSourceDefault
		}
	} else if c, ok := matchClockTime(text, r.strictMeridiem); ok {
		// An explicit clock time wins over a relative-offset time.
		res.Time, res.TimeSource = c, TimeSourceClock
	}

	return res
}

// ResolveDate returns only the date component of Resolve.
func (r *Resolver) ResolveDate(text string, now time.Time) (string, bool) {
	res := r.Resolve(text, now)
	return res.Date, res.HasDate()
}

// ComposeDueDate combines a date and a clock time into an RFC3339 instant
// in the resolver's location. Composing locally (instead of trusting an
// LLM-supplied instant) avoids server/client timezone skew.
func (r *Resolver) ComposeDueDate(date, clock string) (string, error) {
	d, err := time.ParseInLocation(DateFormatISO, date, r.location)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	c, err := time.Parse(ClockFormat, clock)
	if err != nil {
		return "", fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	due := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, r.location)
	return due.Format(time.RFC3339), nil
}

// SplitDueDate is the inverse of ComposeDueDate: it re-extracts the local
// (date, time) pair from an RFC3339 instant. Round-tripping through
// ComposeDueDate and SplitDueDate returns the original components.
func (r *Resolver) SplitDueDate(due string) (date, clock string, err error) {
	t, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return "", "", fmt.Errorf("invalid due date %q: %w", due, err)
	}
	t = t.In(r.location)
	return t.Format(DateFormatISO), t.Format(ClockFormat), nil
}

// TimeContext builds the temporal context block injected into LLM prompts
// so relative expressions resolve against the user's calendar, not the
// model's training data. Like Resolve, it reads the zone from now itself.
func (r *Resolver) TimeContext(now time.Time) string {
	tomorrow := now.AddDate(0, 0, 1)
	return fmt.Sprintf(
		"CURRENT CONTEXT (use for resolving relative dates and times):\n"+
			"- Today: %s (%s)\n"+
			"- Tomorrow: %s\n"+
			"- Current time: %s\n"+
			"- Timezone: %s\n"+
			"All dates in your answer must be YYYY-MM-DD, all times HH:mm (24-hour), local to this timezone.",
		now.Format(DateFormatISO),
		now.Weekday().String(),
		tomorrow.Format(DateFormatISO),
		now.Format(ClockFormat),
		now.Location().String(),
	)
}
