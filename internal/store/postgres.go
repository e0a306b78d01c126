package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fieldroute/internal/model"
)

// Postgres persists routes and adjustments with JSONB payloads.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

// EnsureSchema creates the tables if missing. Dev helper; production runs
// proper migrations.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS routes (
    id           TEXT PRIMARY KEY,
    payload      JSONB NOT NULL,
    distance_km  DOUBLE PRECISION NOT NULL,
    duration_sec BIGINT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS adjustments (
    id         TEXT PRIMARY KEY,
    route_id   TEXT NOT NULL,
    reason     TEXT NOT NULL,
    payload    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS adjustments_route_idx ON adjustments (route_id);`)
	return err
}

func (p *Postgres) SaveRoute(ctx context.Context, route model.Route) error {
	payload, err := json.Marshal(route)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO routes (id, payload, distance_km, duration_sec, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`,
		route.ID, payload, route.TotalDistanceKm, int64(route.TotalDuration.Seconds()), route.CreatedAt)
	return err
}

func (p *Postgres) GetRoute(ctx context.Context, id string) (model.Route, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx, `SELECT payload FROM routes WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Route{}, ErrNotFound
	}
	if err != nil {
		return model.Route{}, err
	}
	var route model.Route
	if err := json.Unmarshal(payload, &route); err != nil {
		return model.Route{}, err
	}
	return route, nil
}

func (p *Postgres) ListRoutes(ctx context.Context, limit int) ([]model.Route, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := p.db.QueryContext(ctx, `SELECT payload FROM routes ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Route{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var route model.Route
		if err := json.Unmarshal(payload, &route); err != nil {
			return nil, err
		}
		out = append(out, route)
	}
	return out, rows.Err()
}

func (p *Postgres) SaveAdjustment(ctx context.Context, adj model.Adjustment) error {
	payload, err := json.Marshal(adj)
	if err != nil {
		return err
	}
	createdAt := adj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO adjustments (id, route_id, reason, payload, created_at)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
		adj.ID, adj.RouteID, adj.Reason, payload, createdAt)
	return err
}

func (p *Postgres) ListAdjustments(ctx context.Context, routeID string) ([]model.Adjustment, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT payload FROM adjustments WHERE route_id = $1 ORDER BY created_at`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Adjustment{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var adj model.Adjustment
		if err := json.Unmarshal(payload, &adj); err != nil {
			return nil, err
		}
		out = append(out, adj)
	}
	return out, rows.Err()
}

func (p *Postgres) RouteStats(ctx context.Context) (map[string]any, error) {
	var n int
	var km, hours sql.NullFloat64
	err := p.db.QueryRowContext(ctx, `
SELECT COUNT(*), AVG(distance_km), AVG(duration_sec)/3600.0 FROM routes`).Scan(&n, &km, &hours)
	if err != nil {
		return nil, err
	}
	stats := map[string]any{"routes": n}
	if km.Valid {
		stats["avgDistanceKm"] = km.Float64
	}
	if hours.Valid {
		stats["avgDurationHours"] = hours.Float64
	}
	return stats, nil
}
