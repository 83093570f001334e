package query

import (
	"context"
	"fmt"

	"NetLens/internal/config"
	"NetLens/internal/stats"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Querier defines the read side of the persisted statistics snapshots.
type Querier interface {
	// ProtocolDistribution returns the protocol occurrence counts from
	// the most recent snapshot of each protocol.
	ProtocolDistribution(ctx context.Context) (map[string]uint64, error)

	// PortTraffic returns the per-destination-port byte totals from the
	// most recent snapshot of each port.
	PortTraffic(ctx context.Context) (map[uint16]uint64, error)

	// TotalBytes returns the grand total from the latest snapshot.
	TotalBytes(ctx context.Context) (uint64, error)
}

// clickhouseQuerier implements the Querier interface for ClickHouse.
type clickhouseQuerier struct {
	conn driver.Conn
}

// NewClickHouseQuerier creates a new querier for ClickHouse.
func NewClickHouseQuerier(cfg config.ClickHouseConfig) (Querier, error) {
	conn, err := stats.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &clickhouseQuerier{conn: conn}, nil
}

// ProtocolDistribution picks the latest count per protocol; snapshots
// are cumulative, so argMax over the snapshot timestamp is the current
// value.
func (q *clickhouseQuerier) ProtocolDistribution(ctx context.Context) (map[string]uint64, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT Protocol, argMax(PacketCount, Timestamp)
		FROM protocol_counts
		GROUP BY Protocol
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query protocol counts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]uint64)
	for rows.Next() {
		var proto string
		var count uint64
		if err := rows.Scan(&proto, &count); err != nil {
			return nil, fmt.Errorf("failed to scan protocol count: %w", err)
		}
		result[proto] = count
	}
	return result, nil
}

// PortTraffic picks the latest byte total per destination port.
func (q *clickhouseQuerier) PortTraffic(ctx context.Context) (map[uint16]uint64, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT Port, argMax(ByteCount, Timestamp)
		FROM port_traffic
		GROUP BY Port
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query port traffic: %w", err)
	}
	defer rows.Close()

	result := make(map[uint16]uint64)
	for rows.Next() {
		var port uint16
		var bytes uint64
		if err := rows.Scan(&port, &bytes); err != nil {
			return nil, fmt.Errorf("failed to scan port traffic: %w", err)
		}
		result[port] = bytes
	}
	return result, nil
}

// TotalBytes returns the most recent grand total.
func (q *clickhouseQuerier) TotalBytes(ctx context.Context) (uint64, error) {
	var total uint64
	row := q.conn.QueryRow(ctx, `
		SELECT argMax(TotalBytes, Timestamp)
		FROM traffic_totals
	`)
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to scan traffic total: %w", err)
	}
	return total, nil
}
