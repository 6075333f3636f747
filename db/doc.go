// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the polygon schema.

# Connections

Open selects the driver from the configured database type and pings it:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "sqlite" (modernc.org/sqlite, the default) and
"postgres" (github.com/lib/pq). SQLite connections are limited to one
open connection.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - polygon: id, name, points (JSON text), seq, created_at

seq is a monotonically increasing insertion counter; listing orders by it
so the oldest polygon comes first.
*/
package db
