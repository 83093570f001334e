package stats

import (
	"log"
	"time"

	"NetLens/internal/config"
	"NetLens/internal/model"
)

// BuildWriters creates all enabled snapshot writers from the
// configuration. Writers that fail to initialize are skipped with a
// warning so a broken storage backend never prevents capture.
func BuildWriters(cfg config.StatsConfig) []model.Writer {
	writers := make([]model.Writer, 0, len(cfg.Writers))
	for _, def := range cfg.Writers {
		if !def.Enabled {
			continue
		}

		interval, err := time.ParseDuration(def.SnapshotInterval)
		if err != nil {
			log.Printf("Warning: invalid snapshot_interval for writer type '%s': %v, skipping.", def.Type, err)
			continue
		}

		var writer model.Writer
		switch def.Type {
		case "gob":
			writer = NewGobWriter(def.Gob.RootPath, interval)
		case "clickhouse":
			writer, err = NewClickHouseWriter(def.ClickHouse, interval)
			if err != nil {
				log.Printf("Warning: failed to create writer type '%s': %v, skipping.", def.Type, err)
				continue
			}
		default:
			log.Printf("Warning: unknown writer type '%s' in config, skipping.", def.Type)
			continue
		}
		writers = append(writers, writer)
	}
	return writers
}
