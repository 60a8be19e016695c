package ingestservice

import (
	"fmt"
	"sync"
)

const leaderboardTarget = "leaderboard"

func mvpTarget(month, year int) string {
	return fmt.Sprintf("mvp:%04d-%02d", year, month)
}

// busyGuard admits one sync per target at a time.
type busyGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func newBusyGuard() *busyGuard {
	return &busyGuard{active: make(map[string]bool)}
}

// acquire marks target busy. ok is false when it already was; otherwise release must be called.
func (g *busyGuard) acquire(target string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[target] {
		return nil, false
	}
	g.active[target] = true
	return func() {
		g.mu.Lock()
		delete(g.active, target)
		g.mu.Unlock()
	}, true
}
