package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in its own goroutine. The handler gets a context that
// outlives ctx but keeps its logger and a clone of its Sentry hub. Returned
// errors and panics are logged and captured; they never reach the caller.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := detach(ctx)
	hub := sentry.GetHubFromContext(bgCtx)

	go func() {
		logger := ctxlog.From(bgCtx)

		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
				hub.CaptureException(fmt.Errorf("panic in async handler: %v", r))
			}
		}()

		if err := handler(bgCtx); err != nil {
			logger.Error("async handler failed", "error", err)
			hub.CaptureException(err)
		}
	}()
}

// detach drops cancellation and deadline of ctx
func detach(ctx context.Context) context.Context {
	bgCtx := ctxlog.With(context.Background(), ctxlog.From(ctx))

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return sentry.SetHubOnContext(bgCtx, hub.Clone())
}
