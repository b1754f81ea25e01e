// Package ratelimit budgets requests per client and route with token buckets.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the budget a request was checked against. Limit is 0 for
// requests that are not limited.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	lim      *rate.Limiter
	limit    int
	lastSeen time.Time
}

// Limiter tracks one token bucket per client and rule.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config limits every route to 600
// requests a minute.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:       true,
			DefaultLimit:  600,
			DefaultWindow: time.Minute,
			SweepInterval: 5 * time.Minute,
			IdleTTL:       time.Hour,
		}
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.SweepInterval > 0 {
		go l.sweepLoop(config.SweepInterval)
	}
	return l
}

// Allow spends one token of clientID's budget for the request and reports
// whether it may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	cfg := l.config
	switch {
	case !cfg.Enabled, cfg.Exempt[clientID]:
		return true, Info{Allowed: true}
	case cfg.Blocked[clientID]:
		return false, Info{}
	}

	rule := Match(method, path, cfg.Rules)
	key := clientID + " " + method + " " + path
	if rule == nil {
		rule = &Rule{Limit: cfg.DefaultLimit, Window: cfg.DefaultWindow}
	} else {
		key = clientID + " " + rule.Pattern
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucket(key, rule, now)
	allowed := b.lim.AllowN(now, 1)
	tokens := b.lim.TokensAt(now)
	perSecond := float64(b.lim.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(0, int(math.Floor(tokens))),
		ResetTime: now.Add(seconds((float64(b.lim.Burst()) - tokens) / perSecond)),
	}
	if !allowed {
		info.RetryAfter = seconds((1 - tokens) / perSecond)
	}
	return allowed, info
}

func (l *Limiter) bucket(key string, rule *Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		every := rule.Window / time.Duration(rule.Limit)
		lim := rate.NewLimiter(rate.Every(every), burst)
		// start full as of now so the first refill is measured from creation
		lim.SetBurstAt(now, burst)
		b = &bucket{lim: lim, limit: rule.Limit}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets idle for longer than IdleTTL.
func (l *Limiter) sweep() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
