package stats

import (
	"context"
	"fmt"
	"log"
	"time"

	"NetLens/internal/config"
	"NetLens/internal/model"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

const createProtocolTableStatement = `
CREATE TABLE IF NOT EXISTS protocol_counts (
    Timestamp   DateTime,
    Protocol    String,
    PacketCount UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Protocol, Timestamp);
`

const createPortTableStatement = `
CREATE TABLE IF NOT EXISTS port_traffic (
    Timestamp DateTime,
    Port      UInt16,
    ByteCount UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Port, Timestamp);
`

const createTotalsTableStatement = `
CREATE TABLE IF NOT EXISTS traffic_totals (
    Timestamp  DateTime,
    TotalBytes UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY Timestamp;
`

// ClickHouseWriter persists statistics snapshots to ClickHouse. It
// implements the model.Writer interface.
type ClickHouseWriter struct {
	conn     driver.Conn
	interval time.Duration
}

// NewClickHouseWriter creates a new ClickHouse writer and ensures the
// statistics tables exist.
func NewClickHouseWriter(cfg config.ClickHouseConfig, interval time.Duration) (model.Writer, error) {
	conn, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	for _, stmt := range []string{createProtocolTableStatement, createPortTableStatement, createTotalsTableStatement} {
		if err := conn.Exec(context.Background(), stmt); err != nil {
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}
	log.Println("Successfully connected to ClickHouse and ensured tables exist.")

	return &ClickHouseWriter{conn: conn, interval: interval}, nil
}

// GetInterval returns the configured snapshot interval for this writer.
func (w *ClickHouseWriter) GetInterval() time.Duration {
	return w.interval
}

// Connect opens a ClickHouse connection and verifies it with a ping.
func Connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// Write inserts one snapshot into the three statistics tables.
func (w *ClickHouseWriter) Write(snapshot model.StatsSnapshot, timestamp string) error {
	if len(snapshot.ProtocolCounts) == 0 && snapshot.TotalBytes == 0 {
		return nil // Nothing to write
	}

	snapshotTime, err := time.Parse(timestampLayout, timestamp)
	if err != nil {
		snapshotTime = snapshot.TakenAt
	}
	ctx := context.Background()

	batch, err := w.conn.PrepareBatch(ctx, "INSERT INTO protocol_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare protocol batch: %w", err)
	}
	for proto, count := range snapshot.ProtocolCounts {
		if err := batch.Append(snapshotTime, proto, count); err != nil {
			return fmt.Errorf("failed to append protocol count: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send protocol batch: %w", err)
	}

	batch, err = w.conn.PrepareBatch(ctx, "INSERT INTO port_traffic")
	if err != nil {
		return fmt.Errorf("failed to prepare port batch: %w", err)
	}
	for port, bytes := range snapshot.PortBytes {
		if err := batch.Append(snapshotTime, uint16(port), bytes); err != nil {
			return fmt.Errorf("failed to append port traffic: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send port batch: %w", err)
	}

	if err := w.conn.Exec(ctx, "INSERT INTO traffic_totals VALUES (?, ?)", snapshotTime, snapshot.TotalBytes); err != nil {
		return fmt.Errorf("failed to insert traffic total: %w", err)
	}

	log.Printf("Wrote stats snapshot (%d protocols, %d ports) to ClickHouse", len(snapshot.ProtocolCounts), len(snapshot.PortBytes))
	return nil
}
