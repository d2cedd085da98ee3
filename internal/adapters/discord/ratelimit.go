package discord

import (
	"sync"
	"time"
)

// userLimiter frena toggles repetidos del mismo usuario dentro de win.
type userLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
	now  func() time.Time
}

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{next: map[string]time.Time{}, win: window, now: time.Now}
}

func (l *userLimiter) Allow(userID string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if until, ok := l.next[userID]; ok && now.Before(until) {
		return false
	}
	// limpieza perezosa para que el mapa no crezca con usuarios viejos
	if len(l.next) > 1024 {
		for id, until := range l.next {
			if !now.Before(until) {
				delete(l.next, id)
			}
		}
	}
	l.next[userID] = now.Add(l.win)
	return true
}
