// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds the migration files, one directory per backend.
//
//go:embed sqlite/*.sql
var FS embed.FS
