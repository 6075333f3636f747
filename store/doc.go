// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists polygons.

# Repository

Every backend implements:

	FetchAll(ctx) ([]models.Polygon, error)   // insertion order
	Insert(ctx, name, points) (models.Polygon, error)
	Remove(ctx, id) (bool, error)             // false when nothing matched

Identifiers are random UUIDs. Coordinates are sanitized on insert so that
stored points are always finite.

# Backends

  - SQLStore: the polygon table (SQLite or PostgreSQL, see package db)
  - FileStore: a pretty-printed JSON array on disk, cached after the first read
  - FallbackStore: tries a primary repository and serves the same operation
    from a fallback when the primary returns an error

The server composes them as

	repo := store.NewFallbackStore(store.NewSQLStore(conn), store.NewFileStore(cfg.DataFile))

so polygons stay available when the database is unreachable.
*/
package store
