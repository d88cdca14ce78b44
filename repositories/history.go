//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=../mocks/mock_history_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"stageshow/domain"
)

// IHistoryRepository records accepted operator actions for post-show review.
// It is an audit trail, not state persistence: live ShowState never touches
// disk.
type IHistoryRepository interface {
	StoreAction(entry HistoryEntry) error
	GetActions(sessionID string, limit int) ([]HistoryEntry, error)
}

// HistoryEntry is one accepted action as it went through the reducer.
type HistoryEntry struct {
	ID        uuid.UUID     `json:"id"`
	SessionID string        `json:"sessionId"`
	Action    domain.Action `json:"action"`
	At        time.Time     `json:"at"`
}

type HistoryRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit int
}

func NewHistoryRepository(db *badger.DB, log *slog.Logger, limit int) HistoryRepository {
	return HistoryRepository{db: db, log: log, limit: limit}
}

// StoreAction persists an entry in BadgerDB. The key is formatted as
// "act:{session}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using the UUID as a collision disconnector if two
//     actions land on the same nanosecond.
func (h HistoryRepository) StoreAction(entry HistoryEntry) error {
	key := fmt.Sprintf("act:%s:%019d:%s",
		entry.SessionID,
		entry.At.UnixNano(),
		entry.ID,
	)
	bytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetActions retrieves the most recent entries for a session, newest first,
// using a reverse prefix scan. limit<=0 falls back to the repository default.
func (h HistoryRepository) GetActions(sessionID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = h.limit
	}

	var entries []HistoryEntry
	err := h.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("act:%s:", sessionID)
		prefix := []byte(prefixStr)

		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key for this prefix, then walk back.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(entries) == limit {
				h.log.Debug(fmt.Sprintf("History limit of %d reached", limit), "session", sessionID)
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var entry HistoryEntry
				if err := json.Unmarshal(value, &entry); err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
