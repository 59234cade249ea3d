// Package ratelimit throttles outbound SMTP probes so bulk validation does
// not hammer remote mail servers. A global token bucket caps the total probe
// rate; the big consumer providers get tighter per-domain buckets because
// they are quickest to block probing IPs.
package ratelimit

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Manager combines a global limiter with per-domain limiters.
type Manager struct {
	global  *rate.Limiter
	mu      sync.RWMutex
	domains map[string]*rate.Limiter

	defaultRate  rate.Limit
	defaultBurst int
}

// NewManager creates a manager with a global limit of globalPerSec probes
// per second and a per-domain default of perDomainPerSec. Major providers
// are pre-registered with tighter limits.
func NewManager(globalPerSec, perDomainPerSec float64) *Manager {
	m := &Manager{
		global:       rate.NewLimiter(rate.Limit(globalPerSec), int(globalPerSec)+1),
		domains:      make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(perDomainPerSec),
		defaultBurst: int(perDomainPerSec) + 1,
	}

	for _, d := range []string{"gmail.com", "googlemail.com"} {
		m.domains[d] = rate.NewLimiter(2, 2)
	}
	for _, d := range []string{"outlook.com", "hotmail.com", "live.com", "yahoo.com"} {
		m.domains[d] = rate.NewLimiter(1, 1)
	}
	return m
}

// Wait blocks until both the global and the domain bucket allow one probe,
// or until ctx is done.
func (m *Manager) Wait(ctx context.Context, domain string) error {
	if err := m.global.Wait(ctx); err != nil {
		return err
	}
	return m.limiterFor(strings.ToLower(domain)).Wait(ctx)
}

func (m *Manager) limiterFor(domain string) *rate.Limiter {
	m.mu.RLock()
	l, ok := m.domains[domain]
	m.mu.RUnlock()
	if ok {
		return l
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok = m.domains[domain]; !ok {
		l = rate.NewLimiter(m.defaultRate, m.defaultBurst)
		m.domains[domain] = l
	}
	return l
}
