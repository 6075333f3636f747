// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/polycanvas/models"
)

// SQLStore keeps polygons in the polygon table created by db.CreateSchema.
type SQLStore struct {
	db *sql.DB

	mu      sync.Mutex
	lastSeq int64
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FetchAll(ctx context.Context) ([]models.Polygon, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, points
		FROM polygon
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polygons: %w", err)
	}
	defer rows.Close()

	polygons := []models.Polygon{}
	for rows.Next() {
		var p models.Polygon
		var raw string
		if err := rows.Scan(&p.ID, &p.Name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan polygon: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &p.Points); err != nil {
			return nil, fmt.Errorf("failed to decode points for polygon %s: %w", p.ID, err)
		}
		polygons = append(polygons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polygons: %w", err)
	}

	return polygons, nil
}

func (s *SQLStore) Insert(ctx context.Context, name string, points []models.Point) (models.Polygon, error) {
	polygon := models.Polygon{
		ID:     uuid.NewString(),
		Name:   name,
		Points: sanitize(points),
	}

	encoded, err := json.Marshal(polygon.Points)
	if err != nil {
		return models.Polygon{}, fmt.Errorf("failed to encode points: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO polygon (id, name, points, seq, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, polygon.ID, polygon.Name, string(encoded), s.nextSeq(), time.Now().UTC())
	if err != nil {
		return models.Polygon{}, fmt.Errorf("failed to insert polygon: %w", err)
	}

	return polygon, nil
}

func (s *SQLStore) Remove(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM polygon WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete polygon: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// nextSeq returns a wall-clock based sequence number that never repeats
// within this process, even when inserts land in the same nanosecond.
func (s *SQLStore) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := time.Now().UnixNano()
	if seq <= s.lastSeq {
		seq = s.lastSeq + 1
	}
	s.lastSeq = seq
	return seq
}
