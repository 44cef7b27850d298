package usecase

import (
	"voicetask/internal/task/repository"
	"voicetask/pkg/gcalendar"
	pkgLog "voicetask/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.TaskRepository
	calendar   *gcalendar.Client // nil disables calendar sync
	calendarID string
	timezone   string
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	calendar *gcalendar.Client,
	calendarID string,
	timezone string,
) *implUseCase {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &implUseCase{
		l:          l,
		repo:       repo,
		calendar:   calendar,
		calendarID: calendarID,
		timezone:   timezone,
	}
}
