package temporal

// DateSource identifies which matcher produced a resolved date.
type DateSource string

const (
	SourceNone         DateSource = ""
	SourceExplicitDate DateSource = "explicit_date"
	SourceWeekday      DateSource = "weekday"
	SourceRelative     DateSource = "relative"
	SourceDayWord      DateSource = "day_word" // today / tonight / tomorrow
)

// TimeSource identifies which matcher produced a resolved clock time.
type TimeSource string

const (
	TimeSourceNone     TimeSource = ""
	TimeSourceClock    TimeSource = "clock"
	TimeSourceRelative TimeSource = "relative"
	TimeSourceDefault  TimeSource = "named_default" // morning / afternoon / evening
)

// Resolution holds the date and time components extracted from free text.
// Either component may be empty when no matching signal was found.
type Resolution struct {
	Date       string // YYYY-MM-DD in the resolver's location
	Time       string // HH:mm, 24-hour
	DateSource DateSource
	TimeSource TimeSource
}

// HasDate reports whether a date component was resolved.
func (r Resolution) HasDate() bool { return r.Date != "" }

// HasTime reports whether a time component was resolved.
func (r Resolution) HasTime() bool { return r.Time != "" }
