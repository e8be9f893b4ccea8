package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/jirabridge/pkg/utils/async"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// errorLog captures error records and signals after each write. Reading buf
// after receiving from written is race free.
type errorLog struct {
	buf     *bytes.Buffer
	handler slog.Handler
	written chan struct{}
}

func newErrorLog() *errorLog {
	buf := &bytes.Buffer{}
	return &errorLog{
		buf:     buf,
		handler: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelError}),
		written: make(chan struct{}, 1),
	}
}

func (h *errorLog) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *errorLog) Handle(ctx context.Context, r slog.Record) error {
	err := h.handler.Handle(ctx, r)
	h.written <- struct{}{}
	return err
}

func (h *errorLog) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &errorLog{buf: h.buf, handler: h.handler.WithAttrs(attrs), written: h.written}
}

func (h *errorLog) WithGroup(name string) slog.Handler {
	return &errorLog{buf: h.buf, handler: h.handler.WithGroup(name), written: h.written}
}

func (h *errorLog) wait(t *testing.T) string {
	t.Helper()
	select {
	case <-h.written:
		return h.buf.String()
	case <-time.After(time.Second):
		t.Fatal("nothing was logged")
		return ""
	}
}

func TestDispatch_LogsErrorWithCallerLogger(t *testing.T) {
	h := newErrorLog()
	ctx := logging.With(context.Background(), slog.New(h).With("job", "load_spaces"))

	async.Dispatch(ctx, 0, func(ctx context.Context) error {
		return errors.New("confluence unreachable")
	})

	out := h.wait(t)
	gt.S(t, out).Contains("error in async handler")
	gt.S(t, out).Contains("confluence unreachable")
	gt.S(t, out).Contains("job=load_spaces")
}

func TestDispatch_RecoversPanic(t *testing.T) {
	h := newErrorLog()
	ctx := logging.With(context.Background(), slog.New(h))

	async.Dispatch(ctx, 0, func(ctx context.Context) error {
		panic("spaces cache corrupted")
	})

	out := h.wait(t)
	gt.S(t, out).Contains("panic in async handler")
	gt.S(t, out).Contains("spaces cache corrupted")
	gt.S(t, out).Contains("dispatch_test.go")
}

func TestDispatch_DetachedFromCaller(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	result := make(chan error, 1)

	async.Dispatch(ctx, 0, func(newCtx context.Context) error {
		close(started)
		<-ctx.Done()
		result <- newCtx.Err()
		return nil
	})

	<-started
	cancel()

	select {
	case err := <-result:
		gt.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler did not finish")
	}
}

func TestDispatch_AppliesTimeout(t *testing.T) {
	result := make(chan error, 1)

	async.Dispatch(context.Background(), 20*time.Millisecond, func(newCtx context.Context) error {
		_, ok := newCtx.Deadline()
		gt.True(t, ok)

		select {
		case <-newCtx.Done():
			result <- newCtx.Err()
		case <-time.After(time.Second):
			result <- nil
		}
		return nil
	})

	select {
	case err := <-result:
		gt.True(t, errors.Is(err, context.DeadlineExceeded))
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not finish")
	}
}
