package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBreaker struct {
	allowErr  error
	successes int
	failures  int
}

func (f *fakeBreaker) Allow(context.Context) error { return f.allowErr }
func (f *fakeBreaker) OnSuccess(context.Context)   { f.successes++ }
func (f *fakeBreaker) OnFailure(context.Context)   { f.failures++ }

var errUpstream = errors.New("upstream down")

func TestDefaultOptions_AreUsable(t *testing.T) {
	opts := DefaultOptions()

	assert.Greater(t, opts.FailureThreshold, 0)
	assert.Greater(t, opts.FailWindow, time.Duration(0))
	assert.Greater(t, opts.OpenCoolDown, time.Duration(0))
	assert.True(t, opts.FailOpen)
	assert.Equal(t, "cb:", opts.Prefix)
}

func TestRun_NilBreakerCallsThrough(t *testing.T) {
	out, err := Run(context.Background(), nil, nil, func(context.Context) (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestRun_Success(t *testing.T) {
	b := &fakeBreaker{}

	out, err := Run(context.Background(), b, nil, func(context.Context) (int, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, out)
	assert.Equal(t, 1, b.successes)
	assert.Equal(t, 0, b.failures)
}

func TestRun_BlockedWhenOpen(t *testing.T) {
	b := &fakeBreaker{allowErr: ErrCircuitOpen}
	called := false

	_, err := Run(context.Background(), b, nil, func(context.Context) (int, error) {
		called = true
		return 0, nil
	})

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestRun_CountsClassifiedFailuresOnly(t *testing.T) {
	errIgnored := errors.New("client mistake")
	isFailure := func(err error) bool { return errors.Is(err, errUpstream) }

	b := &fakeBreaker{}

	_, err := Run(context.Background(), b, isFailure, func(context.Context) (int, error) {
		return 0, errUpstream
	})
	require.ErrorIs(t, err, errUpstream)

	_, err = Run(context.Background(), b, isFailure, func(context.Context) (int, error) {
		return 0, errIgnored
	})
	require.ErrorIs(t, err, errIgnored)

	assert.Equal(t, 1, b.failures)
	assert.Equal(t, 0, b.successes)
}
