package interfaces

import (
	json "github.com/goccy/go-json"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
)

// SnapshotStoreInterface owns the current-state file. Load never fails: a
// missing or unreadable file yields an empty snapshot.
type SnapshotStoreInterface interface {
	Load() *models.AggregateSnapshot
	Save(snapshot *models.AggregateSnapshot) error
}

// HistoryStoreInterface owns the bounded history file. Load decodes the entries;
// Append only encodes the new one and keeps every stored entry as written.
type HistoryStoreInterface interface {
	Load() []models.HistoryEntry
	Append(entry models.HistoryEntry) (int, error)
}

// ArchiveInterface receives entries evicted from the history, as stored.
type ArchiveInterface interface {
	Evict(entries []json.RawMessage)
	Flush() error
	Close()
}
