package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/storage/interfaces"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

const archiveSuffix = ".cold.zst"

// ArchiveFile is the on-disk format of one month of evicted history. Entries
// keep the exact JSON they had in the history file.
type ArchiveFile struct {
	Entries []json.RawMessage `json:"entries"`
}

// HistoryArchive keeps history entries that fell out of the live history file,
// one zstd-compressed file per month.
type HistoryArchive struct {
	mu         sync.Mutex
	dir        string
	pending    map[string][]json.RawMessage // month → entries waiting for Flush
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

// NewHistoryArchive returns a no-op archive when persistence.archiveDir is empty.
func NewHistoryArchive(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.ArchiveInterface {
	if conf.Persistence.ArchiveDir == "" {
		return &noopArchive{compressor: compressor}
	}
	return &HistoryArchive{
		dir:        conf.Persistence.ArchiveDir,
		pending:    make(map[string][]json.RawMessage),
		compressor: compressor,
		logger:     logger,
	}
}

// Evict buffers entries; nothing touches the disk until Flush.
func (a *HistoryArchive) Evict(entries []json.RawMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range entries {
		month := models.StoredMonth(e)
		a.pending[month] = append(a.pending[month], e)
	}
}

// Flush appends every pending entry to its month file. A month is only cleared
// from the buffer once its file was written.
func (a *HistoryArchive) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	months := make([]string, 0, len(a.pending))
	for m := range a.pending {
		months = append(months, m)
	}
	sort.Strings(months)

	for _, month := range months {
		file, err := a.load(month)
		if err != nil {
			return err
		}
		file.Entries = append(file.Entries, a.pending[month]...)
		if err := a.write(month, file); err != nil {
			return err
		}
		a.logger.Infof(providers.TypeStorage, "Archived %d history entries to %s", len(a.pending[month]), a.path(month))
		delete(a.pending, month)
	}
	return nil
}

func (a *HistoryArchive) Close() {
	a.compressor.Close()
}

// load must be called under a.mu. A missing file is an empty archive; a
// corrupt one is an error so it is never overwritten.
func (a *HistoryArchive) load(month string) (*ArchiveFile, error) {
	path := a.path(month)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ArchiveFile{}, nil
		}
		return nil, err
	}

	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}

	var file ArchiveFile
	if err := json.Unmarshal(decompressed, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &file, nil
}

func (a *HistoryArchive) write(month string, file *ArchiveFile) error {
	jsonData, err := json.Marshal(file)
	if err != nil {
		return err
	}
	compressed, err := a.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return writeFile(a.path(month), compressed)
}

// path returns e.g. "<dir>/history-2026-10.cold.zst".
func (a *HistoryArchive) path(month string) string {
	return filepath.Join(a.dir, "history-"+month+archiveSuffix)
}

type noopArchive struct {
	compressor interfaces.CompressorInterface
}

func (n *noopArchive) Evict(_ []json.RawMessage) {}
func (n *noopArchive) Flush() error              { return nil }
func (n *noopArchive) Close()                    { n.compressor.Close() }
