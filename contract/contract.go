//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"stageshow/domain"
)

// Worker doesn't protect itself. It runs until its context is canceled and
// reports the reason it stopped.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// StateSink is one connection's inbox for full ShowState snapshots. The
// protocol is level-triggered: a sink that misses an intermediate snapshot
// still converges on the next one, so implementations may drop stale
// deliveries but must never reorder them. Callers can reach Consume out of
// commit order; runtime.Version carries the store's per-session commit
// number, and implementations reject any snapshot whose version is not newer
// than the last one they accepted.
type StateSink interface {
	Consume(ctx context.Context, state domain.ShowState) error
}

// IRegistry tracks which connections are subscribed to which session.
type IRegistry interface {
	SinksForSession(sessionID string) []StateSink
	Subscribe(connID, sessionID string, sink StateSink)
	Unsubscribe(connID, sessionID string)
	HasConnections(sessionID string) bool
}
