package circuitbreaker

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCircuitOpen = errors.New("lookup service temporarily unavailable, please try again shortly")
	// ErrBreakerUnavailable is returned by Allow when the breaker state cannot
	// be read and Options.FailOpen is false.
	ErrBreakerUnavailable = errors.New("circuit breaker state unavailable")
)

const (
	defaultFailureThreshold = 5
	defaultFailWindow       = 10
	defaultOpenCooldown     = 30
	defaultFailOpen         = true
	defaultPrefix           = "cb:"
)

type Breaker interface {
	Allow(ctx context.Context) error
	OnSuccess(ctx context.Context)
	OnFailure(ctx context.Context)
}

type Options struct {
	// Number of failures before entering open state.
	FailureThreshold int
	// Time between failures to count as an outage.
	FailWindow time.Duration
	// How long to stay open before calls are let through again.
	OpenCoolDown time.Duration
	// What Allow does while the breaker is blind (Redis down, timing out).
	// TRUE: allows requests to proceed without the breaker participating
	// FALSE: blocks requests
	FailOpen bool
	// Key prefix to prevent name clashing.
	Prefix string
}

func DefaultOptions() Options {
	return Options{
		FailureThreshold: defaultFailureThreshold,
		FailWindow:       defaultFailWindow * time.Second,
		OpenCoolDown:     defaultOpenCooldown * time.Second,
		FailOpen:         defaultFailOpen,
		Prefix:           defaultPrefix,
	}
}

// Run calls fn unless the breaker is open. Errors for which isFailure
// reports true count toward opening the breaker; a nil isFailure counts
// every error. A nil breaker runs fn directly. There is no retry.
func Run[T any](
	ctx context.Context,
	b Breaker,
	isFailure func(error) bool,
	fn func(context.Context) (T, error),
) (T, error) {
	if b == nil {
		return fn(ctx)
	}

	var zero T
	if err := b.Allow(ctx); err != nil {
		return zero, err
	}

	result, err := fn(ctx)
	if err != nil {
		if isFailure == nil || isFailure(err) {
			b.OnFailure(ctx)
		}
		return result, err
	}

	b.OnSuccess(ctx)
	return result, nil
}
