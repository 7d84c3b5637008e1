package credentials

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect bundles what differs between the SQL backends: driver name,
// placeholder style and how a uniqueness violation is reported.
type Dialect struct {
	Name   string
	Driver string
	Goose  goose.Dialect

	queries           queries
	isUniqueViolation func(error) bool
}

type queries struct {
	userExists      string
	findHash        string
	insertUser      string
	closeBootstrap  string
	recordBootstrap string
}

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

var Postgres = &Dialect{
	Name:   "postgres",
	Driver: "pgx",
	Goose:  goose.DialectPostgres,
	queries: queries{
		userExists: `SELECT EXISTS (SELECT 1 FROM users)`,
		findHash:   `SELECT password_hash FROM users WHERE username = $1`,
		insertUser: `INSERT INTO users (id, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)`,
		closeBootstrap: `INSERT INTO bootstrap (id, username, created_at)
		 VALUES (1, $1, $2)`,
		recordBootstrap: `INSERT INTO bootstrap (id, username, created_at)
		 VALUES (1, $1, $2)
		 ON CONFLICT (id) DO NOTHING`,
	},
	isUniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
}

var SQLite = &Dialect{
	Name:   "sqlite",
	Driver: "sqlite",
	Goose:  goose.DialectSQLite3,
	queries: queries{
		userExists: `SELECT EXISTS (SELECT 1 FROM users)`,
		findHash:   `SELECT password_hash FROM users WHERE username = ?`,
		insertUser: `INSERT INTO users (id, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		closeBootstrap: `INSERT INTO bootstrap (id, username, created_at)
		 VALUES (1, ?, ?)`,
		recordBootstrap: `INSERT INTO bootstrap (id, username, created_at)
		 VALUES (1, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
	},
	isUniqueViolation: func(err error) bool {
		var sqliteErr *sqlite.Error
		// the low byte is the primary result code, the rest is the extended code
		return errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	},
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (*Dialect, error) {
	switch name {
	case Postgres.Name:
		return Postgres, nil
	case SQLite.Name:
		return SQLite, nil
	default:
		return nil, fmt.Errorf("unknown sql dialect %q", name)
	}
}
