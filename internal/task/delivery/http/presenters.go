package http

import (
	"time"

	"voicetask/internal/model"
	"voicetask/internal/task"
)

// --- Request DTOs ---

type listReq struct {
	IncludeCompleted bool `form:"include_completed"`
	Limit            int  `form:"limit"`
	Offset           int  `form:"offset"`
}

func (r listReq) toInput() task.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := r.Offset
	if offset < 0 {
		offset = 0
	}
	return task.ListInput{
		IncludeCompleted: r.IncludeCompleted,
		Limit:            limit,
		Offset:           offset,
	}
}

// --- Response DTOs ---

type taskResp struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Notes        string     `json:"notes,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Priority     string     `json:"priority,omitempty"`
	Reminders    []int      `json:"reminders,omitempty"`
	Attendees    []string   `json:"attendees,omitempty"`
	Completed    bool       `json:"completed"`
	CalendarLink string     `json:"calendar_link,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func newTaskResp(t model.Task) taskResp {
	return taskResp{
		ID:           t.ID,
		Title:        t.Title,
		Notes:        t.Notes,
		DueDate:      t.DueDate,
		Priority:     t.Priority,
		Reminders:    t.Reminders,
		Attendees:    t.Attendees,
		Completed:    t.Completed,
		CalendarLink: t.CalendarLink,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t)
	}
	return listResp{Tasks: tasks, Total: out.Total}
}

type detailResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newDetailResp(t model.Task) detailResp {
	return detailResp{Task: newTaskResp(t)}
}
