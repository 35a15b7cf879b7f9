package services

import (
	"log/slog"
	"sync"
	"time"
)

// WindowLimiter bounds request rate per identifier over a rolling window.
// The counter for an identifier resets to full capacity once its window
// elapses. Guarantees hold within a single process only.
type WindowLimiter struct {
	limit  int
	window time.Duration
	mu     sync.Mutex
	counts map[string]*windowState
	logger *slog.Logger
	now    func() time.Time
}

type windowState struct {
	start time.Time
	count int
}

// WindowResult reports the outcome of a limiter check.
type WindowResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

func NewWindowLimiter(limit int, window time.Duration, logger *slog.Logger) *WindowLimiter {
	return &WindowLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowState),
		logger: logger,
		now:    time.Now,
	}
}

// Check records a request for the identifier if capacity remains. Distinct
// identifiers never interfere with each other.
func (l *WindowLimiter) Check(identifier string) WindowResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.counts[identifier]
	if !ok || now.Sub(w.start) >= l.window {
		w = &windowState{start: now}
		l.counts[identifier] = w
	}

	resetAt := w.start.Add(l.window)
	if w.count >= l.limit {
		return WindowResult{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	w.count++
	return WindowResult{Allowed: true, Remaining: l.limit - w.count, ResetAt: resetAt}
}

// Status reports the current window without consuming capacity.
func (l *WindowLimiter) Status(identifier string) WindowResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.counts[identifier]
	if !ok || now.Sub(w.start) >= l.window {
		return WindowResult{Allowed: true, Remaining: l.limit, ResetAt: now.Add(l.window)}
	}

	return WindowResult{
		Allowed:   w.count < l.limit,
		Remaining: l.limit - w.count,
		ResetAt:   w.start.Add(l.window),
	}
}

// Reset clears a single identifier's counter, leaving others untouched.
func (l *WindowLimiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counts, identifier)
}

// StartCleanup periodically drops elapsed windows so the map cannot grow
// unbounded in a long-running process.
func (l *WindowLimiter) StartCleanup(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			l.mu.Lock()
			now := l.now()
			removed := 0
			for id, w := range l.counts {
				if now.Sub(w.start) >= l.window {
					delete(l.counts, id)
					removed++
				}
			}
			if removed > 0 && l.logger != nil {
				l.logger.Debug("Window limiter cleanup", "removed", removed, "remaining", len(l.counts))
			}
			l.mu.Unlock()
		}
	}()
}
