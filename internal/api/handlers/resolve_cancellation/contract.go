package resolve_cancellation

import (
	"context"

	resolveCancellation "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/usecase/resolve_cancellation"
)

type ResolveCancellationUseCase interface {
	Execute(ctx context.Context, req *resolveCancellation.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
