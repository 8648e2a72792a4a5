//go:build sqlite_cgo && !purego

package sqldb

// CGO SQLite (github.com/mattn/go-sqlite3), faster for file-backed
// deployments.
//
// Build command:
//
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// SQLiteDriverName is the database/sql driver used for SQLite.
	SQLiteDriverName = "sqlite3"

	// SQLiteBuildMode describes the current build configuration.
	SQLiteBuildMode = "cgo"
)
