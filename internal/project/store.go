package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"bsprimer/internal/logger"
)

const schema = `create table if not exists projects (
	id      text primary key,
	name    text not null,
	updated text not null,
	blob    text not null
);
create index if not exists projects_name on projects(name);`

// fixed width so that text order is time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Summary is one row of List.
type Summary struct {
	ID      string
	Name    string
	Updated time.Time
}

// Store keeps projects as opaque JSON blobs in a sqlite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store %s: %w", path, err)
	}
	logger.Debug("project store open", zap.String("path", path))
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save inserts or replaces p.
func (s *Store) Save(ctx context.Context, p *Project) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into projects(id, name, updated, blob) values(?, ?, ?, ?)
		 on conflict(id) do update set name = excluded.name, updated = excluded.updated, blob = excluded.blob`,
		p.ID, p.Name, p.Updated.UTC().Format(timeLayout), string(blob))
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	logger.Debug("project saved", zap.String("id", p.ID), zap.Int("primers", len(p.Primers)))
	return nil
}

// Load fetches a project by ID, or by name when no ID matches. With several
// projects of the same name the most recently updated wins.
func (s *Store) Load(ctx context.Context, key string) (*Project, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`select blob from projects where id = ? or name = ?
		 order by (id = ?) desc, updated desc limit 1`, key, key, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var p Project
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return nil, fmt.Errorf("decode project %q: %w", key, err)
	}
	return &p, nil
}

// List returns all projects, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `select id, name, updated from projects order by updated desc, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var updated string
		if err := rows.Scan(&sm.ID, &sm.Name, &updated); err != nil {
			return nil, err
		}
		sm.Updated, _ = time.Parse(timeLayout, updated)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Delete removes the project with the given ID or name.
func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `delete from projects where id = ?`, p.ID); err != nil {
		return err
	}
	logger.Debug("project deleted", zap.String("id", p.ID))
	return nil
}
