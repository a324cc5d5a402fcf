package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginLimiter throttles credential attempts per client address. Entries idle
// past the eviction window are dropped on the next lookup sweep.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterEvictAfter = 10 * time.Minute

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{clients: make(map[string]*clientLimiter)}
}

// Allow reports whether another login attempt from addr may proceed. Each
// address gets a short burst, then one attempt every two seconds.
func (l *loginLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > limiterEvictAfter {
			delete(l.clients, key)
		}
	}

	client, ok := l.clients[addr]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Every(2*time.Second), 5)}
		l.clients[addr] = client
	}
	client.lastSeen = now
	return client.limiter.Allow()
}
