package async

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine detached from ctx cancellation.
// The logger of ctx is carried over. Panics and returned errors are logged,
// never propagated. If timeout is positive the handler context expires
// after it.
func Dispatch(ctx context.Context, timeout time.Duration, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		runCtx := newCtx
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(newCtx, timeout)
			defer cancel()
		}

		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := logging.From(newCtx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
			}
		}()

		if err := handler(runCtx); err != nil {
			logger := logging.From(newCtx)
			logger.Error("error in async handler", "error", err)
		}
	}()
}

// newBackgroundContext returns context.Background() carrying the logger of ctx
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = logging.With(newCtx, logging.From(ctx))
	return newCtx
}
