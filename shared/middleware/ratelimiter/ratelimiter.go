// Package ratelimiter implements token buckets keyed by client identity.
package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for a single client
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	rate       float64 // tokens per second
	lastRefill time.Time

	key    string
	timer  *time.Timer
	parent *Limiter
}

// Limiter hands out one bucket per key and forgets keys idle for longer than expiration.
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*bucket
	rate       float64
	capacity   float64
	expiration time.Duration
}

func New(rate, capacity float64, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
	}
}

// Allow takes a token from key's bucket.
func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).take(time.Now())
}

// Stop cancels all expiration timers
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}

func (l *Limiter) bucket(key string) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		b.touch()
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// another goroutine may have created it meanwhile
	if b, ok = l.buckets[key]; ok {
		b.touch()
		return b
	}

	b = &bucket{
		tokens:     l.capacity,
		capacity:   l.capacity,
		rate:       l.rate,
		lastRefill: time.Now(),
		key:        key,
		parent:     l,
	}
	l.buckets[key] = b
	b.touch()
	return b
}

func (l *Limiter) forget(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// touch restarts the expiration timer
func (b *bucket) touch() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.expiration, func() {
		b.parent.forget(b.key)
	})
}

func (b *bucket) take(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}
