package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rzbill/tally/internal/server/http/controllers"
)

// limiterPool keeps one token-bucket limiter per client key, evicting
// entries that have been idle past idleTTL.
type limiterPool struct {
	mu           sync.Mutex
	entries      map[string]*poolEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type poolEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	return &limiterPool{
		entries:      make(map[string]*poolEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	now := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()
	if ent, ok := p.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	lim := rate.NewLimiter(p.rps, p.burst)
	p.entries[key] = &poolEntry{lim: lim, lastSeen: now}
	return lim
}

func (p *limiterPool) cleanup() {
	cutoff := time.Now().Add(-p.idleTTL)
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, ent := range p.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(p.entries, k)
		}
	}
}

// startJanitor evicts idle limiters periodically until ctx is cancelled.
func (p *limiterPool) startJanitor(ctx context.Context) {
	t := time.NewTicker(p.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.cleanup()
			}
		}
	}()
}

// rateLimit rejects requests with 429 once a client exhausts its bucket.
func rateLimit(pool *limiterPool, trustProxy bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := controllers.ClientAddr(r, trustProxy)
		if !pool.get(key).Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(1))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
