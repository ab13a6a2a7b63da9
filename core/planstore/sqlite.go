package planstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/freightworks/loadplan/core/model"
)

// SQLiteStore persists load plans to a SQLite database. The full plan is
// stored as a JSON record next to the columns used for listing.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS load_plans (
        id TEXT PRIMARY KEY,
        name TEXT,
        created_at INTEGER,
        record TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Save writes a deep snapshot of the layout to the database.
func (s *SQLiteStore) Save(ctx context.Context, name, description string, layout model.TrailerLayout, deliveries []model.DeliveryItem) (LoadPlan, error) {
	lay, del := snapshot(layout, deliveries)
	plan := LoadPlan{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   s.now().UTC(),
		Layout:      lay,
		Deliveries:  del,
	}
	b, err := json.Marshal(plan)
	if err != nil {
		return LoadPlan{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO load_plans (id, name, created_at, record) VALUES (?, ?, ?, ?)`,
		plan.ID, plan.Name, plan.CreatedAt.Unix(), string(b))
	if err != nil {
		return LoadPlan{}, err
	}
	return plan, nil
}

// Load returns the plan stored under id.
func (s *SQLiteStore) Load(ctx context.Context, id string) (LoadPlan, error) {
	var rec string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM load_plans WHERE id = ?`, id).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return LoadPlan{}, model.UnknownItemError{Op: "load plan", ID: id}
	}
	if err != nil {
		return LoadPlan{}, err
	}
	var plan LoadPlan
	if err := json.Unmarshal([]byte(rec), &plan); err != nil {
		return LoadPlan{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return plan, nil
}

// List returns all stored plans, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]LoadPlan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM load_plans ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []LoadPlan
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var plan LoadPlan
		if err := json.Unmarshal([]byte(rec), &plan); err != nil {
			continue
		}
		res = append(res, plan)
	}
	return res, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
