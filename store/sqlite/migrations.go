package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Relief store (SQLite).
var Migrations = migrate.NewGroup("relief")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_relief_users",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS relief_users (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    age        INTEGER NOT NULL DEFAULT 0,
    location   TEXT NOT NULL DEFAULT '',
    phone      TEXT NOT NULL DEFAULT '',
    email      TEXT NOT NULL DEFAULT '',
    password   TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_relief_users_name ON relief_users (name);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS relief_users`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_relief_services",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS relief_services (
    id           TEXT PRIMARY KEY,
    timestamp    TEXT NOT NULL DEFAULT (datetime('now')),
    user         TEXT NOT NULL DEFAULT '',
    disaster     TEXT NOT NULL DEFAULT '',
    food_packets INTEGER NOT NULL DEFAULT 0,
    medical_kits INTEGER NOT NULL DEFAULT 0,
    location     TEXT NOT NULL DEFAULT '',
    evac_center  TEXT NOT NULL DEFAULT 'Not selected',
    created_at   TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_relief_services_user ON relief_services (user);
CREATE INDEX IF NOT EXISTS idx_relief_services_location ON relief_services (location);
CREATE INDEX IF NOT EXISTS idx_relief_services_timestamp ON relief_services (timestamp);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS relief_services`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_relief_supplies",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS relief_supplies (
    id         TEXT PRIMARY KEY,
    location   TEXT NOT NULL DEFAULT '',
    year       INTEGER NOT NULL DEFAULT 0,
    total_food INTEGER NOT NULL DEFAULT 0,
    total_med  INTEGER NOT NULL DEFAULT 0,
    given_food INTEGER NOT NULL DEFAULT 0,
    given_med  INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_relief_supplies_location_year ON relief_supplies (location, year);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS relief_supplies`)
				return err
			},
		},
	)
}
