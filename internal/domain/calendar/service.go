package calendar

import "context"

type WorkCalendarService interface {
	Get(ctx context.Context) (WorkCalendarConfig, error)
	Update(ctx context.Context, req UpdateWorkCalendarRequest) (WorkCalendarConfig, error)
}
