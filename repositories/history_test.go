package repositories

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stageshow/domain"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestHistoryRepository_StoreAndGet(t *testing.T) {
	req := require.New(t)
	repo := NewHistoryRepository(openTestDB(t), slog.Default(), 50)

	base := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.StoreAction(HistoryEntry{
			ID:        uuid.New(),
			SessionID: "hall",
			Action:    domain.Action{Type: domain.ActionFX, Effect: fmt.Sprintf("fx-%d", i)},
			At:        base.Add(time.Duration(i) * time.Second),
		})
		req.NoError(err)
	}
	err := repo.StoreAction(HistoryEntry{
		ID:        uuid.New(),
		SessionID: "lounge",
		Action:    domain.Action{Type: domain.ActionNext},
		At:        base,
	})
	req.NoError(err)

	entries, err := repo.GetActions("hall", 10)
	req.NoError(err)
	req.Len(entries, 3)
	// Newest first.
	req.Equal("fx-2", entries[0].Action.Effect)
	req.Equal("fx-0", entries[2].Action.Effect)
	for _, entry := range entries {
		req.Equal("hall", entry.SessionID)
	}
}

func TestHistoryRepository_Limit(t *testing.T) {
	req := require.New(t)
	repo := NewHistoryRepository(openTestDB(t), slog.Default(), 2)

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		err := repo.StoreAction(HistoryEntry{
			ID:        uuid.New(),
			SessionID: "hall",
			Action:    domain.Action{Type: domain.ActionNext},
			At:        base.Add(time.Duration(i) * time.Millisecond),
		})
		req.NoError(err)
	}

	// Explicit limit wins.
	entries, err := repo.GetActions("hall", 3)
	req.NoError(err)
	req.Len(entries, 3)

	// limit<=0 falls back to the repository default.
	entries, err = repo.GetActions("hall", 0)
	req.NoError(err)
	req.Len(entries, 2)
}

func TestHistoryRepository_UnknownSessionIsEmpty(t *testing.T) {
	req := require.New(t)
	repo := NewHistoryRepository(openTestDB(t), slog.Default(), 50)

	entries, err := repo.GetActions("nobody", 10)
	req.NoError(err)
	req.Empty(entries)
}
