package stats

import "sync"

// latestGuard serializes concurrent recomputations so only the most
// recently started one is allowed to publish its result. Callers take
// a ticket with Begin before loading and check Commit before applying.
type latestGuard struct {
	mu     sync.Mutex
	issued uint64
}

func (g *latestGuard) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// Commit reports whether the ticket is still the newest one issued.
// A ticket superseded by a later Begin is stale and its result must
// be discarded.
func (g *latestGuard) Commit(ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ticket == g.issued
}
