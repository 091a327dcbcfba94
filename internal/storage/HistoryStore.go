package storage

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/storage/interfaces"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

const DefaultHistoryLimit = 1000

type HistoryStore struct {
	path    string
	limit   int
	archive interfaces.ArchiveInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewHistoryStore(conf *structures.Config, archive interfaces.ArchiveInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.HistoryStoreInterface {
	limit := conf.Persistence.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{
		path:    conf.Persistence.HistoryFile,
		limit:   limit,
		archive: archive,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *HistoryStore) Load() []models.HistoryEntry {
	entries := make([]models.HistoryEntry, 0)
	data, ok := h.read()
	if !ok {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		h.logger.Warnf(providers.TypeStorage, "Malformed %s, starting a new history: %s", h.path, err)
		return make([]models.HistoryEntry, 0)
	}
	if entries == nil {
		entries = make([]models.HistoryEntry, 0)
	}
	return entries
}

// loadStored returns the entries exactly as they are in the file.
func (h *HistoryStore) loadStored() []json.RawMessage {
	entries := make([]json.RawMessage, 0)
	data, ok := h.read()
	if !ok {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		h.logger.Warnf(providers.TypeStorage, "Malformed %s, starting a new history: %s", h.path, err)
		return make([]json.RawMessage, 0)
	}
	if entries == nil {
		entries = make([]json.RawMessage, 0)
	}
	return entries
}

func (h *HistoryStore) read() ([]byte, bool) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if !os.IsNotExist(err) {
			h.logger.Warnf(providers.TypeStorage, "Unable to read %s, starting a new history: %s", h.path, err)
		}
		return nil, false
	}
	return data, true
}

// Append rewrites the history with entry added, keeping only the newest
// entries up to the limit. Entries already in the file are written back
// unchanged. The resulting length is returned.
func (h *HistoryStore) Append(entry models.HistoryEntry) (int, error) {
	start := time.Now()
	defer func() { h.metrics.ObservePersistenceDuration(time.Since(start)) }()

	encoded, err := json.Marshal(entry)
	if err != nil {
		return 0, fmt.Errorf("encode history entry: %w", err)
	}
	entries := append(h.loadStored(), json.RawMessage(encoded))

	var evicted []json.RawMessage
	if over := len(entries) - h.limit; over > 0 {
		evicted = make([]json.RawMessage, over)
		copy(evicted, entries[:over])
		entries = entries[over:]
	}

	data, err := json.MarshalIndent(entries, "", indent)
	if err != nil {
		return 0, fmt.Errorf("encode history: %w", err)
	}
	if err := writeFile(h.path, data); err != nil {
		return 0, fmt.Errorf("write %s: %w", h.path, err)
	}
	h.metrics.SetHistorySize(len(entries))

	if len(evicted) > 0 {
		h.archive.Evict(evicted)
		if err := h.archive.Flush(); err != nil {
			h.logger.Errorf(providers.TypeStorage, "Failed to archive %d evicted history entries: %s", len(evicted), err)
		}
	}
	return len(entries), nil
}
