// Package migrations embeds the goose SQL migrations, one directory per
// SQL dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// For returns the migrations for dialect ("postgres" or "sqlite") with the
// .sql files at the root of the returned FS.
func For(dialect string) (fs.FS, error) {
	return fs.Sub(Migrations, dialect)
}
