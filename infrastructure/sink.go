package infrastructure

import (
	"context"
	"sync"

	"stageshow/domain"
)

// Sink is one connection's latest-wins snapshot buffer. Because every push is
// a full snapshot, dropping a stale one is always safe: the connection
// converges on whatever arrives next. Consume therefore never blocks on a
// slow consumer.
//
// Snapshots carry the store's per-session commit version, and the sink only
// accepts a snapshot newer than the last one it accepted. A caller that
// committed first but reached the sink last is discarded instead of
// overwriting the fresher state already buffered or delivered.
type Sink struct {
	mu      sync.Mutex
	primed  bool
	version uint64
	updates chan domain.ShowState
}

func NewSink() *Sink {
	return &Sink{updates: make(chan domain.ShowState, 1)}
}

// Consume buffers a snapshot for delivery, replacing any undelivered one.
// Snapshots at or below the highest version already accepted are dropped.
func (s *Sink) Consume(_ context.Context, state domain.ShowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primed && state.Runtime.Version <= s.version {
		return nil
	}
	s.primed = true
	s.version = state.Runtime.Version

	for {
		select {
		case s.updates <- state:
			return nil
		default:
		}
		// Buffer full: evict the stale snapshot and retry. The loop settles
		// because only the connection's writer ever drains this channel.
		select {
		case <-s.updates:
		default:
		}
	}
}

// Updates is drained by the connection's writer goroutine.
func (s *Sink) Updates() <-chan domain.ShowState {
	return s.updates
}
