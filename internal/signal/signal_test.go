package signal

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunWithContextReturnsActionError(t *testing.T) {
	want := errors.New("boom")
	err := RunWithContext(func(ctx context.Context) error {
		assert.NoError(t, ctx.Err())
		return want
	})
	assert.ErrorIs(t, err, want)
}

func TestRunWithContextCancelsOnSignal(t *testing.T) {
	err := RunWithContext(func(ctx context.Context) error {
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("context was not cancelled")
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
}
