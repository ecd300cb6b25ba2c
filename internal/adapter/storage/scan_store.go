// internal/adapter/storage/scan_store.go

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// ScanStore persists finished scans so the dashboard's history view can
// page through past runs. The live pipeline never reads from here.
type ScanStore struct {
	db *pgxpool.Pool
}

// NewScanStore creates a new scan store
func NewScanStore(db *pgxpool.Pool) *ScanStore {
	return &ScanStore{
		db: db,
	}
}

// EnsureSchema creates the scans table if it does not exist yet.
func (s *ScanStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS scans (
			id UUID PRIMARY KEY,
			scanned_at TIMESTAMPTZ NOT NULL,
			sources JSONB NOT NULL,
			raw_count INT NOT NULL,
			trends JSONB NOT NULL
		)
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("error creating scans table: %w", err)
	}
	return nil
}

// SaveScan saves a finished scan to storage
func (s *ScanStore) SaveScan(ctx context.Context, result *trend.ScanResult) error {
	query := `
		INSERT INTO scans (id, scanned_at, sources, raw_count, trends)
		VALUES ($1, $2, $3, $4, $5)
	`

	sourcesJSON, err := json.Marshal(result.Sources)
	if err != nil {
		return fmt.Errorf("error marshaling sources: %w", err)
	}

	trendsJSON, err := json.Marshal(result.Trends)
	if err != nil {
		return fmt.Errorf("error marshaling trends: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		uuid.New().String(),
		result.ScannedAt,
		sourcesJSON,
		result.RawCount,
		trendsJSON,
	)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RecentScans returns the most recent scans, newest first.
func (s *ScanStore) RecentScans(ctx context.Context, limit int) ([]trend.ScanResult, error) {
	query := `
		SELECT scanned_at, sources, raw_count, trends
		FROM scans
		ORDER BY scanned_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var results []trend.ScanResult
	for rows.Next() {
		var (
			result      trend.ScanResult
			sourcesJSON []byte
			trendsJSON  []byte
		)
		if err := rows.Scan(&result.ScannedAt, &sourcesJSON, &result.RawCount, &trendsJSON); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if err := json.Unmarshal(sourcesJSON, &result.Sources); err != nil {
			return nil, fmt.Errorf("error unmarshaling sources: %w", err)
		}
		if err := json.Unmarshal(trendsJSON, &result.Trends); err != nil {
			return nil, fmt.Errorf("error unmarshaling trends: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
