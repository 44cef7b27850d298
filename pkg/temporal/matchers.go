package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Each matcher recognizes exactly one temporal form and reports whether it
// fired. Keeping them separate keeps the precedence order in Resolve
// explicit and lets each form be tested on its own.

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

const monthAlt = `(january|jan|february|feb|march|mar|april|apr|may|june|jun|july|jul|august|aug|september|sep|october|oct|november|nov|december|dec)`

var (
	reMonthDay = regexp.MustCompile(`(?i)\b` + monthAlt + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	reDayMonth = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthAlt + `\b`)

	reWeekday = regexp.MustCompile(`(?i)\b(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)

	reRelative = regexp.MustCompile(`(?i)\b(?:in|after)\s+(\d+)\s+(minute|min|hour|hr|day|week)s?\b`)

	reClockMeridiem = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?\b`)
	reClockColon    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	reClockBare     = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})\b`)
	reClockOClock   = regexp.MustCompile(`(?i)\b(\d{1,2})\s+o'?clock\b`)

	reTZHint     = regexp.MustCompile(`\[tz:([A-Za-z_]+(?:/[A-Za-z_+\-]+){1,2})\]`)
	reOffsetHint = regexp.MustCompile(`\[utcoffset:([+-]?\d{1,2})\]`)
)

// extractLocationHint honors an out-of-band timezone marker embedded in the
// text and returns the text with the marker removed.
func extractLocationHint(text string, fallback *time.Location) (*time.Location, string) {
	if m := reTZHint.FindStringSubmatch(text); m != nil {
		cleaned := strings.TrimSpace(reTZHint.ReplaceAllString(text, " "))
		if loc, err := time.LoadLocation(m[1]); err == nil {
			return loc, cleaned
		}
		return fallback, cleaned
	}
	if m := reOffsetHint.FindStringSubmatch(text); m != nil {
		cleaned := strings.TrimSpace(reOffsetHint.ReplaceAllString(text, " "))
		if hours, err := strconv.Atoi(m[1]); err == nil && hours >= -12 && hours <= 14 {
			return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600), cleaned
		}
		return fallback, cleaned
	}
	return fallback, text
}

// matchExplicitDate recognizes "<Month> <Day>" and "<Day> <Month>" with
// optional ordinal suffix, resolved in the current year.
func matchExplicitDate(text string, now time.Time, loc *time.Location) (string, bool) {
	var monthStr, dayStr string
	if m := reMonthDay.FindStringSubmatch(text); m != nil {
		monthStr, dayStr = m[1], m[2]
	} else if m := reDayMonth.FindStringSubmatch(text); m != nil {
		dayStr, monthStr = m[1], m[2]
	} else {
		return "", false
	}

	month, ok := monthsByName[strings.ToLower(monthStr)]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	d := time.Date(now.Year(), month, day, 0, 0, 0, 0, loc)
	return d.Format(DateFormatISO), true
}

// matchWeekday resolves the first weekday name in the text to its nearest
// occurrence. A delta of zero keeps today: users saying "Monday" on a
// Monday mean today, not next week.
func matchWeekday(text string, now time.Time) (string, bool) {
	m := reWeekday.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	target, ok := weekdaysByName[strings.ToLower(m[1])]
	if !ok {
		return "", false
	}
	daysUntil := (int(target) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, daysUntil).Format(DateFormatISO), true
}

type relativeMatch struct {
	date  string
	clock string // set only for minute/hour offsets
}

// matchRelativeOffset recognizes "in N minutes/hours/days/weeks" (and the
// "after" variant) added to now.
func matchRelativeOffset(text string, now time.Time) (relativeMatch, bool) {
	m := reRelative.FindStringSubmatch(text)
	if m == nil {
		return relativeMatch{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return relativeMatch{}, false
	}

	switch strings.ToLower(m[2]) {
	case "minute", "min":
		t := now.Add(time.Duration(n) * time.Minute)
		return relativeMatch{date: t.Format(DateFormatISO), clock: t.Format(ClockFormat)}, true
	case "hour", "hr":
		t := now.Add(time.Duration(n) * time.Hour)
		return relativeMatch{date: t.Format(DateFormatISO), clock: t.Format(ClockFormat)}, true
	case "day":
		return relativeMatch{date: now.AddDate(0, 0, n).Format(DateFormatISO)}, true
	case "week":
		return relativeMatch{date: now.AddDate(0, 0, n*7).Format(DateFormatISO)}, true
	}
	return relativeMatch{}, false
}

// matchDayWord recognizes the bare day words today / tonight / tomorrow.
func matchDayWord(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format(DateFormatISO), true
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		return now.Format(DateFormatISO), true
	}
	return "", false
}

// matchClockTime recognizes clock times with or without a meridiem marker.
// Without one, hours 1-7 are biased to PM and 8-12 left untouched: casual
// scheduling references afternoons far more often than pre-dawn hours.
// This is a heuristic, not a guarantee; a genuine "at 6" morning alarm
// will be misread. Strict mode drops bare hours entirely instead.
func matchClockTime(text string, strict bool) (string, bool) {
	if m := reClockMeridiem.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return "", false
		}
		if strings.EqualFold(m[3], "p") && hour != 12 {
			hour += 12
		} else if strings.EqualFold(m[3], "a") && hour == 12 {
			hour = 0
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}

	if m := reClockColon.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			if hour >= 13 || strict {
				return fmt.Sprintf("%02d:%02d", hour, minute), true
			}
			return fmt.Sprintf("%02d:%02d", biasHour(hour), minute), true
		}
		return "", false
	}

	if strict {
		return "", false
	}

	if m := reClockBare.FindStringSubmatch(text); m != nil {
		if hour, err := strconv.Atoi(m[1]); err == nil && hour >= 1 && hour <= 12 {
			return fmt.Sprintf("%02d:00", biasHour(hour)), true
		}
	}
	if m := reClockOClock.FindStringSubmatch(text); m != nil {
		if hour, err := strconv.Atoi(m[1]); err == nil && hour >= 1 && hour <= 12 {
			return fmt.Sprintf("%02d:00", biasHour(hour)), true
		}
	}
	return "", false
}

// biasHour applies the ambiguous-hour policy: 1-7 assumed PM, 8-12 kept.
func biasHour(hour int) int {
	if hour >= 1 && hour <= 7 {
		return hour + 12
	}
	return hour
}

// matchNamedTimeOfDay applies the default clock times for the named parts
// of the day. Only consulted when no explicit clock time matched.
func matchNamedTimeOfDay(text string) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "morning"):
		return "09:00", true
	case strings.Contains(lower, "afternoon"):
		return "14:00", true
	case strings.Contains(lower, "evening"):
		return "18:00", true
	}
	return "", false
}
