package http

import (
	"voicetask/internal/voice"
)

// --- Request DTOs ---

type resolveReq struct {
	Transcript string `json:"transcript" binding:"required,min=1,max=4000"`
	SessionID  string `json:"session_id" binding:"omitempty,max=128"`
}

func (r resolveReq) toInput(dryRun bool) voice.ResolveInput {
	return voice.ResolveInput{
		Transcript: r.Transcript,
		SessionID:  r.SessionID,
		DryRun:     dryRun,
	}
}

// --- Response DTOs ---

type attendeeResp struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

type extractedDataResp struct {
	Title                string         `json:"title,omitempty"`
	Date                 string         `json:"date,omitempty"`
	Time                 string         `json:"time,omitempty"`
	DueDate              string         `json:"due_date,omitempty"`
	Priority             string         `json:"priority,omitempty"`
	Reminders            []int          `json:"reminders,omitempty"`
	ApplyToLastScheduled bool           `json:"apply_to_last_scheduled,omitempty"`
	Attendees            []attendeeResp `json:"attendees,omitempty"`
}

type commandResp struct {
	ID            string             `json:"id,omitempty"`
	Text          string             `json:"text"`
	Intent        string             `json:"intent"`
	Confidence    float64            `json:"confidence"`
	ExtractedData *extractedDataResp `json:"extracted_data,omitempty"`
	Note          string             `json:"note,omitempty"`
}

func newCommandResp(cmd voice.StructuredCommand) commandResp {
	out := commandResp{
		ID:         cmd.ID,
		Text:       cmd.Text,
		Intent:     string(cmd.Intent),
		Confidence: cmd.Confidence,
		Note:       cmd.Note,
	}
	if d := cmd.ExtractedData; d != nil {
		data := extractedDataResp{
			Title:                d.Title,
			Date:                 d.Date,
			Time:                 d.Time,
			DueDate:              d.DueDate,
			Priority:             d.Priority,
			Reminders:            d.Reminders,
			ApplyToLastScheduled: d.ApplyToLastScheduled,
		}
		for _, a := range d.Attendees {
			data.Attendees = append(data.Attendees, attendeeResp{
				Email:       a.Email,
				DisplayName: a.DisplayName,
			})
		}
		out.ExtractedData = &data
	}
	return out
}

type resolveResp struct {
	Commands        []commandResp `json:"commands"`
	LastScheduledID string        `json:"last_scheduled_id,omitempty"`
	TaskIDs         []string      `json:"task_ids,omitempty"`
}

func (h *handler) newResolveResp(out voice.ResolveOutput) resolveResp {
	commands := make([]commandResp, len(out.Commands))
	for i, cmd := range out.Commands {
		commands[i] = newCommandResp(cmd)
	}
	return resolveResp{
		Commands:        commands,
		LastScheduledID: out.LastScheduledID,
		TaskIDs:         out.TaskIDs,
	}
}
