package list_cancellation_requests

import (
	"context"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview/models"
)

type WeekViewService interface {
	ListCancellationRequests(ctx context.Context, isAdmin bool) ([]models.RequestView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
