package lookup

import (
	"context"

	"github.com/cohort-stats/skills-dashboard/pkg/circuitbreaker"
)

type guardedService struct {
	next    Service
	breaker circuitbreaker.Breaker
}

// WithBreaker routes every lookup through b. Only outages (see IsOutage)
// count toward opening it; a nil breaker returns next unchanged.
func WithBreaker(next Service, b circuitbreaker.Breaker) Service {
	if b == nil {
		return next
	}
	return &guardedService{next: next, breaker: b}
}

func (g *guardedService) Lookup(ctx context.Context, email string) (Response, error) {
	return circuitbreaker.Run(ctx, g.breaker, IsOutage, func(ctx context.Context) (Response, error) {
		return g.next.Lookup(ctx, email)
	})
}
