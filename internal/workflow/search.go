package workflow

import "sync"

// SearchSlot is one free-text lookup field inside a form (home team, away
// team, stadium). The three slots of the add-match form are fully independent
// of each other.
//
// Every issued search gets a sequence number from Begin; only the response
// carrying the slot's latest sequence number may update the result state, so
// a slow earlier response can never overwrite a later query's results.
type SearchSlot[T any] struct {
	mu       sync.Mutex
	seq      uint64
	query    string
	results  []T
	selected *T
}

// Begin registers a new search and returns its sequence number.
func (s *SearchSlot[T]) Begin(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.query = query
	return s.seq
}

// Apply installs results for the search with the given sequence number.
// Stale responses are dropped; the return value reports whether the slot
// accepted the results.
func (s *SearchSlot[T]) Apply(seq uint64, results []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.results = results
	return true
}

// Fail clears the slot's result set for a failed search, again only when the
// failure belongs to the latest issued query.
func (s *SearchSlot[T]) Fail(seq uint64) bool {
	return s.Apply(seq, nil)
}

func (s *SearchSlot[T]) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *SearchSlot[T]) Results() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Select stores the chosen entity and clears the query text and result set.
func (s *SearchSlot[T]) Select(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &item
	s.results = nil
	s.query = ""
}

// Selected returns the chosen entity, or nil when nothing is selected yet.
func (s *SearchSlot[T]) Selected() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Clear empties the result set without touching the selection, used when an
// empty query is submitted.
func (s *SearchSlot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.query = ""
}
