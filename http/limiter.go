package http

import (
	"context"
	"sync"

	"github.com/fwojciec/pagelens"
	"golang.org/x/time/rate"
)

var _ pagelens.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host, so fetches to different
// hosts never wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter allows rps fetches per second to each host, without bursts.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a fetch to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
