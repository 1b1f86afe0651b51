package booking

import "sync"

// flightGuard serializes the forward action per client. Instead of a bare
// boolean it hands out tokens, so a completion reported for a superseded
// request cannot clear a newer one's guard.
type flightGuard struct {
	mu     sync.Mutex
	next   uint64
	active map[string]uint64
}

func newFlightGuard() *flightGuard {
	return &flightGuard{active: make(map[string]uint64)}
}

// begin reserves the guard for clientID. It fails with ErrRequestInFlight if
// a previous request is still outstanding.
func (g *flightGuard) begin(clientID string) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[clientID]; busy {
		return 0, ErrRequestInFlight
	}
	g.next++
	g.active[clientID] = g.next
	return g.next, nil
}

// end releases the guard. A stale token (from a request that was already
// superseded or released) is ignored.
func (g *flightGuard) end(clientID string, token uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active[clientID] == token {
		delete(g.active, clientID)
	}
}
