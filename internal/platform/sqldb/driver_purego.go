//go:build purego || !sqlite_cgo

package sqldb

// Pure Go SQLite (modernc.org/sqlite). No C toolchain is needed, which keeps
// `go test ./...` working everywhere.
//
// Build command:
//
//	CGO_ENABLED=0 go build ./...

import (
	_ "modernc.org/sqlite"
)

const (
	// SQLiteDriverName is the database/sql driver used for SQLite.
	SQLiteDriverName = "sqlite"

	// SQLiteBuildMode describes the current build configuration.
	SQLiteBuildMode = "purego"
)
