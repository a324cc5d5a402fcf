package leagues

import (
	"sync"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// selectedLeagueCache carries the league chosen on the search screen over to
// the detail screen, saving a redundant backend lookup right after
// navigation. Entries are write-once-read-once: Take removes what it returns.
type selectedLeagueCache struct {
	mu      sync.Mutex
	entries map[string]league.League
}

func newSelectedLeagueCache() *selectedLeagueCache {
	return &selectedLeagueCache{entries: make(map[string]league.League)}
}

func (c *selectedLeagueCache) Put(sessionID string, lg league.League) {
	if sessionID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sessionID] = lg
}

// Take returns the cached league when it matches the wanted id, clearing the
// entry either way. A mismatched entry is stale navigation state.
func (c *selectedLeagueCache) Take(sessionID string, leagueID int64) *league.League {
	c.mu.Lock()
	defer c.mu.Unlock()
	lg, ok := c.entries[sessionID]
	if !ok {
		return nil
	}
	delete(c.entries, sessionID)
	if lg.ID != leagueID {
		return nil
	}
	return &lg
}

func (c *selectedLeagueCache) Drop(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
}
