package get_week

import (
	"context"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview/models"
)

type WeekViewService interface {
	GetWeek(ctx context.Context) (*models.WeekView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
