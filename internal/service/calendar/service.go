package calendar

import (
	"context"

	"github.com/clockwise-suite/timekeeping-backend-go/internal/domain/calendar"
)

type WorkCalendarServiceImpl struct {
	calendar.WorkCalendarRepository
}

func NewWorkCalendarService(repo calendar.WorkCalendarRepository) calendar.WorkCalendarService {
	return &WorkCalendarServiceImpl{WorkCalendarRepository: repo}
}

// Get implements calendar.WorkCalendarService.
func (c *WorkCalendarServiceImpl) Get(ctx context.Context) (calendar.WorkCalendarConfig, error) {
	return c.WorkCalendarRepository.Get(ctx)
}

// Update implements calendar.WorkCalendarService. Unset hour targets keep
// their current values.
func (c *WorkCalendarServiceImpl) Update(ctx context.Context, req calendar.UpdateWorkCalendarRequest) (calendar.WorkCalendarConfig, error) {
	if err := req.Validate(); err != nil {
		return calendar.WorkCalendarConfig{}, err
	}

	current, err := c.WorkCalendarRepository.Get(ctx)
	if err != nil {
		return calendar.WorkCalendarConfig{}, err
	}

	current.StartDay = req.Weekday()
	current.DaysPerWeek = req.DaysPerWeek
	if req.MinWeeklyHours != nil {
		current.MinWeeklyHours = *req.MinWeeklyHours
	}
	if req.MinDailyHours != nil {
		current.MinDailyHours = *req.MinDailyHours
	}

	return c.WorkCalendarRepository.Upsert(ctx, current)
}
