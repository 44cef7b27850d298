package usecase

import (
	"context"
	"time"

	"voicetask/internal/task/repository"
	"voicetask/internal/voice"
	"voicetask/pkg/gcalendar"
)

const defaultEventDuration = time.Hour

// trySyncCalendarEvent attempts to create a Google Calendar event for a
// dated task. Returns the event HTML link, or empty string on failure
// (graceful degradation).
func (uc *implUseCase) trySyncCalendarEvent(ctx context.Context, opt repository.CreateTaskOptions, d *voice.ExtractedData) string {
	if uc.calendar == nil || opt.DueDate == nil {
		return ""
	}

	attendees := make([]gcalendar.EventAttendee, 0, len(d.Attendees))
	for _, a := range d.Attendees {
		attendees = append(attendees, gcalendar.EventAttendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
		})
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:      uc.calendarID,
		Summary:         opt.Title,
		Description:     opt.Notes,
		StartTime:       *opt.DueDate,
		EndTime:         opt.DueDate.Add(defaultEventDuration),
		Timezone:        uc.timezone,
		ReminderMinutes: opt.Reminders,
		Attendees:       attendees,
	})
	if err != nil {
		uc.l.Warnf(ctx, "Materialize: calendar event creation failed for %q (non-fatal): %v", opt.Title, err)
		return ""
	}

	return event.HtmlLink
}
