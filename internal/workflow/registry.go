package workflow

import "sync"

// Registry holds per-session workflow state so a draft survives page loads
// and failed submissions. Keys are session ids; entries live until the flow
// finishes or the session logs out.
type Registry[F any] struct {
	mu    sync.Mutex
	flows map[string]*F
}

func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{flows: make(map[string]*F)}
}

// Get returns the session's flow, creating it with fresh when absent.
func (r *Registry[F]) Get(sessionID string, fresh func() *F) *F {
	r.mu.Lock()
	defer r.mu.Unlock()
	flow, ok := r.flows[sessionID]
	if !ok {
		flow = fresh()
		r.flows[sessionID] = flow
	}
	return flow
}

// peek returns the session's flow without creating one.
func (r *Registry[F]) peek(sessionID string) *F {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flows[sessionID]
}

// Drop discards the session's flow, used after completion or on logout.
func (r *Registry[F]) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, sessionID)
}
