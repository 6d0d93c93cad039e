package request_cancellation

import (
	"context"

	requestCancellation "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/request_cancellation"
)

type RequestCancellationUseCase interface {
	Execute(ctx context.Context, req *requestCancellation.Request) (*requestCancellation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
