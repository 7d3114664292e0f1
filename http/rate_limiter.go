package http

import (
	"sync"
	"time"
)

// window is one client's quota for the current fixed window.
type window struct {
	remaining int
	opened    time.Time
}

// RateLimiter grants each client a fixed number of requests per window.
// A client whose window has elapsed is indistinguishable from a new one,
// so the background sweep drops those entries every sweepEvery until Stop.
type RateLimiter struct {
	mu         sync.Mutex
	capacity   int
	period     time.Duration
	sweepEvery time.Duration
	now        func() time.Time
	clients    map[string]*window
	stop       chan struct{}
	stopOnce   sync.Once
}

func NewRateLimiter(capacity int, period, sweepEvery time.Duration) *RateLimiter {
	if sweepEvery <= 0 {
		sweepEvery = period
	}
	rl := &RateLimiter{
		capacity:   capacity,
		period:     period,
		sweepEvery: sweepEvery,
		now:        time.Now,
		clients:    make(map[string]*window),
		stop:       make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(r.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, w := range r.clients {
		if now.Sub(w.opened) >= r.period {
			delete(r.clients, client)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow consumes one request from client's quota.
func (r *RateLimiter) Allow(client string) bool {
	ok, _ := r.Take(client)
	return ok
}

// Take consumes one request from client's quota. When the quota is spent it
// returns how long until the client's window reopens.
func (r *RateLimiter) Take(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.clients[client]
	if !ok || now.Sub(w.opened) >= r.period {
		w = &window{remaining: r.capacity, opened: now}
		r.clients[client] = w
	}

	if w.remaining <= 0 {
		return false, w.opened.Add(r.period).Sub(now)
	}
	w.remaining--
	return true, 0
}

// Clients reports how many clients currently hold a window.
func (r *RateLimiter) Clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
