package contract

import (
	"context"
	"time"
)

type HistoryEntry struct {
	UserId       string
	UserMessage  string
	Reply        string
	ResponseType string
	CreatedAt    time.Time
}

// HistoryStore persists processed exchanges. Nothing stores chat history yet,
// so the only implementation is NoopHistoryStore.
type HistoryStore interface {
	Append(ctx context.Context, entry HistoryEntry) error
	Query(ctx context.Context, userId string, limit int) ([]HistoryEntry, error)
}

type NoopHistoryStore struct{}

var _ HistoryStore = NoopHistoryStore{}

func (NoopHistoryStore) Append(context.Context, HistoryEntry) error { return nil }

func (NoopHistoryStore) Query(context.Context, string, int) ([]HistoryEntry, error) {
	return []HistoryEntry{}, nil
}
