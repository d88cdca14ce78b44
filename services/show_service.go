//go:generate go run go.uber.org/mock/mockgen -source=show_service.go -destination=../mocks/mock_show_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stageshow/contract"
	"stageshow/domain"
	"stageshow/repositories"
)

// IShowService is the single entry point for everything a connection does to
// a session after the handshake.
type IShowService interface {
	Snapshot(sessionID string) domain.ShowState
	Submit(ctx context.Context, sessionID string, action domain.Action) (domain.ShowState, error)
	Join(ctx context.Context, connID, sessionID string, sink contract.StateSink)
	Leave(connID, sessionID string)
}

// ShowService applies actions through the reducer under the session store's
// serialization guarantee, records the accepted ones, and pushes the resulting
// snapshot to every sink of the session.
type ShowService struct {
	store    SessionApplier
	registry contract.IRegistry
	history  repositories.IHistoryRepository
	catalog  domain.Catalog
	log      *slog.Logger
}

// SessionApplier is the slice of the session store the service needs. The
// store itself satisfies it; tests substitute a fake.
type SessionApplier interface {
	Get(sessionID string) domain.ShowState
	Apply(sessionID string, fn func(domain.ShowState) (domain.ShowState, error)) (domain.ShowState, error)
}

func NewShowService(
	store SessionApplier,
	registry contract.IRegistry,
	history repositories.IHistoryRepository,
	catalog domain.Catalog,
	log *slog.Logger,
) *ShowService {
	return &ShowService{
		store:    store,
		registry: registry,
		history:  history,
		catalog:  catalog,
		log:      log,
	}
}

// Snapshot returns the current state of a session, creating it on first
// reference.
func (s *ShowService) Snapshot(sessionID string) domain.ShowState {
	return s.store.Get(sessionID)
}

// Submit runs one action through read-reduce-commit. On success the new
// snapshot is fanned out to every connection of the session; on failure
// nothing is committed and nothing is broadcast.
func (s *ShowService) Submit(ctx context.Context, sessionID string, action domain.Action) (domain.ShowState, error) {
	now := time.Now().UTC()

	next, err := s.store.Apply(sessionID, func(cur domain.ShowState) (domain.ShowState, error) {
		return domain.Reduce(cur, action, s.catalog, now)
	})
	if err != nil {
		return domain.ShowState{}, err
	}

	// History is an audit trail; a write failure must not fail the action.
	if err := s.history.StoreAction(repositories.HistoryEntry{
		ID:        uuid.New(),
		SessionID: sessionID,
		Action:    action,
		At:        now,
	}); err != nil {
		s.log.Warn("Failed to record action history", "session", sessionID, "error", err)
	}

	// Concurrent submissions can reach the fanout in either order; the commit
	// version stamped by the store lets every sink keep only the newest
	// snapshot.
	s.broadcast(ctx, sessionID, next)
	return next, nil
}

// Join subscribes a connection to a session and immediately pushes the
// current snapshot so a late joiner is consistent without waiting for the
// next action.
func (s *ShowService) Join(ctx context.Context, connID, sessionID string, sink contract.StateSink) {
	s.registry.Subscribe(connID, sessionID, sink)

	if err := sink.Consume(ctx, s.store.Get(sessionID)); err != nil {
		s.log.Warn("Failed to push initial snapshot", "connection", connID, "session", sessionID, "error", err)
	}
}

// Leave removes a connection from the session's fanout.
func (s *ShowService) Leave(connID, sessionID string) {
	s.registry.Unsubscribe(connID, sessionID)
}

func (s *ShowService) broadcast(ctx context.Context, sessionID string, state domain.ShowState) {
	for _, sink := range s.registry.SinksForSession(sessionID) {
		if err := sink.Consume(ctx, state); err != nil {
			// The sink's connection handles its own teardown; a failed
			// delivery here never touches the other connections.
			s.log.Warn("Failed to deliver snapshot", "session", sessionID, "error", err)
		}
	}
}
