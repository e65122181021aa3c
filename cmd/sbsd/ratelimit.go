package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter is a per-IP request limiter: one golang.org/x/time/rate
// token bucket per client address, reclaimed when idle. This generalizes
// the adapted server's hand-rolled per-IP bucket to guard POST /api/solve
// (a large available set can be expensive to enumerate, more so combined
// with a validator), using the same token-bucket library the validation
// pipeline throttle already depends on.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*ipVisitor
	rps      rate.Limit
	burst    int
}

type ipVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	l := &ipLimiter{
		visitors: make(map[string]*ipVisitor),
		rps:      rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
	}
	go l.cleanupLoop()
	return l
}

func (l *ipLimiter) cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

// allow reports whether ip may proceed, consuming a token if so.
func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &ipVisitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	limiter := v.limiter
	l.mu.Unlock()

	return limiter.Allow()
}
