// Package postgres implements store.Driver on lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// DB is the Postgres driver.
type DB struct {
	db *sql.DB
}

// NewDB opens a connection using a lib/pq DSN.
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("dsn required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migrate postgres")
		}
	}
	return nil
}

// placeholder returns the n-th positional parameter, e.g. $1.
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id            SERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		nickname      TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_ts    BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS access_token (
		id          SERIAL PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
		token       TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_ts  BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS project (
		id         SERIAL PRIMARY KEY,
		uid        TEXT NOT NULL UNIQUE,
		creator_id INTEGER NOT NULL,
		name       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'ACTIVE',
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS project_member (
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		user_id    INTEGER NOT NULL,
		role       TEXT NOT NULL DEFAULT 'MEMBER',
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		PRIMARY KEY (project_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS scene (
		id           SERIAL PRIMARY KEY,
		uid          TEXT NOT NULL UNIQUE,
		project_id   INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		number       TEXT NOT NULL,
		heading      TEXT NOT NULL,
		synopsis     TEXT NOT NULL DEFAULT '',
		page_eighths INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'DRAFT',
		sort_order   INTEGER NOT NULL DEFAULT 0,
		created_ts   BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts   BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS cast_member (
		id             SERIAL PRIMARY KEY,
		uid            TEXT NOT NULL UNIQUE,
		project_id     INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		character_name TEXT NOT NULL DEFAULT '',
		cast_number    INTEGER NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT 'CONFIRMED',
		created_ts     BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts     BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS crew_member (
		id         SERIAL PRIMARY KEY,
		uid        TEXT NOT NULL UNIQUE,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS location (
		id         SERIAL PRIMARY KEY,
		uid        TEXT NOT NULL UNIQUE,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS element (
		id         SERIAL PRIMARY KEY,
		uid        TEXT NOT NULL UNIQUE,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		scene_uid  TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL,
		name       TEXT NOT NULL,
		quantity   INTEGER NOT NULL DEFAULT 1,
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS shooting_day (
		id         SERIAL PRIMARY KEY,
		uid        TEXT NOT NULL UNIQUE,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		day_number INTEGER NOT NULL,
		shoot_date TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'PLANNED',
		notes      TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS shooting_day_scene (
		id              SERIAL PRIMARY KEY,
		shooting_day_id INTEGER NOT NULL REFERENCES shooting_day(id) ON DELETE CASCADE,
		scene_id        INTEGER NOT NULL REFERENCES scene(id) ON DELETE CASCADE,
		sort_order      INTEGER NOT NULL DEFAULT 0,
		UNIQUE (shooting_day_id, scene_id)
	)`,
	`CREATE TABLE IF NOT EXISTS agent_message (
		id         SERIAL PRIMARY KEY,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		user_id    INTEGER NOT NULL,
		role       TEXT NOT NULL,
		content    TEXT NOT NULL,
		metadata   TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE INDEX IF NOT EXISTS idx_agent_message_project_user ON agent_message(project_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scene_project ON scene(project_id)`,
}
