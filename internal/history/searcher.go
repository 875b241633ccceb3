// Package history implements the debounced audit-history search. Keystrokes
// coalesce for a settle delay before one request is issued; an in-flight
// request is superseded rather than canceled, and a generation counter
// ensures only the response for the latest issued query is applied.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/a11ysutra/a11ysutra-cli/pkg/sutra"
)

const defaultSettleDelay = 500 * time.Millisecond

// SearchFunc issues one backend search request.
type SearchFunc func(ctx context.Context, query string) ([]sutra.AuditListItem, error)

// ApplyFunc receives the result of the latest winning request.
type ApplyFunc func(query string, items []sutra.AuditListItem, err error)

// Searcher debounces queries and discards superseded responses.
type Searcher struct {
	mu         sync.Mutex
	settle     time.Duration
	search     SearchFunc
	apply      ApplyFunc
	timer      *time.Timer
	generation uint64
	pending    string
	dirty      bool
	wg         sync.WaitGroup
}

// NewSearcher creates a searcher. A zero settle delay uses the default.
func NewSearcher(settle time.Duration, search SearchFunc, apply ApplyFunc) *Searcher {
	if settle <= 0 {
		settle = defaultSettleDelay
	}
	return &Searcher{
		settle: settle,
		search: search,
		apply:  apply,
	}
}

// Input registers a keystroke's worth of query text. The settle timer
// restarts, so rapid successive inputs produce exactly one request for the
// final text.
func (s *Searcher) Input(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = query
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.settle, s.fire)
}

// Flush issues the pending query immediately, bypassing the settle delay.
// It is a no-op when the pending input already fired.
func (s *Searcher) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.fire()
}

func (s *Searcher) fire() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.generation++
	generation := s.generation
	query := s.pending
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		items, err := s.search(context.Background(), query)

		s.mu.Lock()
		stale := generation != s.generation
		s.mu.Unlock()
		if stale {
			// A newer request was issued while this one was in flight;
			// the latest response wins, so this one is dropped.
			log.Debug().Str("query", query).Msg("Dropping superseded search response")
			return
		}
		s.apply(query, items, err)
	}()
}

// Wait blocks until all in-flight requests have completed. Intended for
// shutdown and tests.
func (s *Searcher) Wait() {
	s.mu.Lock()
	timer := s.timer
	s.mu.Unlock()
	if timer != nil {
		timer.Stop()
	}
	s.wg.Wait()
}
