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

type SnapshotStore struct {
	path    string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewSnapshotStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.SnapshotStoreInterface {
	return &SnapshotStore{
		path:    conf.Persistence.DataFile,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *SnapshotStore) Load() *models.AggregateSnapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warnf(providers.TypeStorage, "Unable to read %s, starting without a baseline: %s", s.path, err)
		}
		return &models.AggregateSnapshot{}
	}

	var snapshot models.AggregateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warnf(providers.TypeStorage, "Malformed %s, starting without a baseline: %s", s.path, err)
		return &models.AggregateSnapshot{}
	}
	return &snapshot
}

func (s *SnapshotStore) Save(snapshot *models.AggregateSnapshot) error {
	start := time.Now()
	defer func() { s.metrics.ObservePersistenceDuration(time.Since(start)) }()

	data, err := json.MarshalIndent(snapshot, "", indent)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := writeFile(s.path, data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
