package temporal

import (
	"strings"
	"testing"
	"time"
)

// Wednesday, 11 March 2026, 10:00 UTC.
var testNow = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

func mustResolver(t *testing.T, tz string, opts ...Option) *Resolver {
	t.Helper()
	r, err := NewResolver(tz, opts...)
	if err != nil {
		t.Fatalf("NewResolver(%q): %v", tz, err)
	}
	return r
}

func TestResolve_Dates(t *testing.T) {
	r := mustResolver(t, "UTC")

	tests := []struct {
		name       string
		text       string
		wantDate   string
		wantSource DateSource
	}{
		{"same-day weekday keeps today", "meeting on wednesday", "2026-03-11", SourceWeekday},
		{"upcoming saturday", "lunch on saturday", "2026-03-14", SourceWeekday},
		{"next-week wrap", "call on tuesday", "2026-03-17", SourceWeekday},
		{"month day", "dentist on march 20", "2026-03-20", SourceExplicitDate},
		{"month day ordinal", "dentist on march 5th", "2026-03-05", SourceExplicitDate},
		{"day month", "dentist on 5th of march", "2026-03-05", SourceExplicitDate},
		{"explicit date beats weekday", "friday march 20", "2026-03-20", SourceExplicitDate},
		{"tomorrow", "do it tomorrow", "2026-03-12", SourceDayWord},
		{"tonight is today", "dinner tonight", "2026-03-11", SourceDayWord},
		{"relative days", "in 2 days", "2026-03-13", SourceRelative},
		{"relative weeks", "after 1 week", "2026-03-18", SourceRelative},
		{"no signal", "buy milk", "", SourceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.text, testNow)
			if res.Date != tt.wantDate {
				t.Errorf("Resolve(%q).Date = %q, want %q", tt.text, res.Date, tt.wantDate)
			}
			if res.DateSource != tt.wantSource {
				t.Errorf("Resolve(%q).DateSource = %q, want %q", tt.text, res.DateSource, tt.wantSource)
			}
		})
	}
}

func TestResolve_ClockTimes(t *testing.T) {
	r := mustResolver(t, "UTC")

	tests := []struct {
		name     string
		text     string
		wantTime string
	}{
		{"pm marker", "at 2 pm", "14:00"},
		{"pm no space", "2:30pm", "14:30"},
		{"dotted meridiem", "at 2 p.m.", "14:00"},
		{"midnight", "at 12 am", "00:00"},
		{"noon", "at 12 pm", "12:00"},
		{"am marker kept", "at 6 am", "06:00"},
		{"bare low hour biased pm", "call at 3", "15:00"},
		{"bare high hour kept", "call at 9", "09:00"},
		{"colon low hour biased", "at 3:30", "15:30"},
		{"colon high hour kept", "at 10:30", "10:30"},
		{"24h colon kept", "at 14:30", "14:30"},
		{"oclock biased", "6 o'clock", "18:00"},
		{"no time", "buy milk", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.text, testNow)
			if res.Time != tt.wantTime {
				t.Errorf("Resolve(%q).Time = %q, want %q", tt.text, res.Time, tt.wantTime)
			}
		})
	}
}

func TestResolve_StrictMeridiem(t *testing.T) {
	r := mustResolver(t, "UTC", WithStrictMeridiem())

	tests := []struct {
		text     string
		wantTime string
	}{
		{"at 2 pm", "14:00"},   // explicit marker still resolves
		{"call at 3", ""},      // bare hour dropped
		{"6 o'clock", ""},      // ditto
		{"at 3:30", "03:30"},   // colon form taken literally
		{"at 14:30", "14:30"},
	}
	for _, tt := range tests {
		res := r.Resolve(tt.text, testNow)
		if res.Time != tt.wantTime {
			t.Errorf("strict Resolve(%q).Time = %q, want %q", tt.text, res.Time, tt.wantTime)
		}
	}
}

func TestResolve_RelativeMinutesAndHours(t *testing.T) {
	r := mustResolver(t, "UTC")

	res := r.Resolve("remind me in 30 minutes", testNow)
	if res.Date != "2026-03-11" || res.Time != "10:30" {
		t.Errorf("in 30 minutes = (%q, %q), want (2026-03-11, 10:30)", res.Date, res.Time)
	}

	res = r.Resolve("in 2 hours", testNow)
	if res.Time != "12:00" {
		t.Errorf("in 2 hours Time = %q, want 12:00", res.Time)
	}

	// An explicit clock time wins over the relative offset's time.
	res = r.Resolve("in 2 days at 4 pm", testNow)
	if res.Date != "2026-03-13" || res.Time != "16:00" {
		t.Errorf("in 2 days at 4 pm = (%q, %q), want (2026-03-13, 16:00)", res.Date, res.Time)
	}
}

func TestResolve_NamedTimeOfDay(t *testing.T) {
	r := mustResolver(t, "UTC")

	tests := []struct {
		text     string
		wantDate string
		wantTime string
	}{
		{"tomorrow morning", "2026-03-12", "09:00"},
		{"saturday afternoon", "2026-03-14", "14:00"},
		{"friday evening", "2026-03-13", "18:00"},
	}
	for _, tt := range tests {
		res := r.Resolve(tt.text, testNow)
		if res.Date != tt.wantDate || res.Time != tt.wantTime {
			t.Errorf("Resolve(%q) = (%q, %q), want (%q, %q)",
				tt.text, res.Date, res.Time, tt.wantDate, tt.wantTime)
		}
		if res.TimeSource != TimeSourceDefault {
			t.Errorf("Resolve(%q).TimeSource = %q, want %q", tt.text, res.TimeSource, TimeSourceDefault)
		}
	}
}

func TestResolve_NowZoneIsAuthoritative(t *testing.T) {
	r := mustResolver(t, "UTC")
	west := time.FixedZone("UTC-11", -11*3600)

	// 10:00 UTC on March 11th is 23:00 on March 10th at UTC-11; a caller
	// resolving for a client in that zone passes now in it.
	res := r.Resolve("call mom today", testNow.In(west))
	if res.Date != "2026-03-10" {
		t.Errorf("today in caller zone = %q, want 2026-03-10", res.Date)
	}

	got := r.TimeContext(testNow.In(west))
	for _, want := range []string{"2026-03-10", "23:00", "UTC-11"} {
		if !strings.Contains(got, want) {
			t.Errorf("TimeContext missing %q:\n%s", want, got)
		}
	}
}

func TestResolve_TimezoneHint(t *testing.T) {
	r := mustResolver(t, "UTC")

	// 10:00 UTC is 23:00 the previous evening at UTC-11, so "today" there
	// is still March 10th.
	res := r.Resolve("today [utcoffset:-11]", testNow)
	if res.Date != "2026-03-10" {
		t.Errorf("today at UTC-11 = %q, want 2026-03-10", res.Date)
	}

	res = r.Resolve("tomorrow [tz:Asia/Tokyo]", testNow)
	if res.Date != "2026-03-12" {
		t.Errorf("tomorrow in Tokyo = %q, want 2026-03-12", res.Date)
	}
}

func TestComposeSplitRoundTrip(t *testing.T) {
	r := mustResolver(t, "Asia/Ho_Chi_Minh")

	due, err := r.ComposeDueDate("2026-03-11", "14:00")
	if err != nil {
		t.Fatalf("ComposeDueDate: %v", err)
	}
	if due != "2026-03-11T14:00:00+07:00" {
		t.Errorf("ComposeDueDate = %q", due)
	}

	date, clock, err := r.SplitDueDate(due)
	if err != nil {
		t.Fatalf("SplitDueDate: %v", err)
	}
	if date != "2026-03-11" || clock != "14:00" {
		t.Errorf("SplitDueDate = (%q, %q), want (2026-03-11, 14:00)", date, clock)
	}

	if _, err := r.ComposeDueDate("not-a-date", "14:00"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestTimeContext(t *testing.T) {
	r := mustResolver(t, "UTC")

	got := r.TimeContext(testNow)
	for _, want := range []string{"2026-03-11", "Wednesday", "2026-03-12", "10:00", "UTC"} {
		if !strings.Contains(got, want) {
			t.Errorf("TimeContext missing %q:\n%s", want, got)
		}
	}
}
