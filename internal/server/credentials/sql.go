package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/cryptox"
	"github.com/dmitrijs2005/selfhostdash/internal/dbx"
	"github.com/dmitrijs2005/selfhostdash/internal/server/migrations"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

var _ Store = (*SQLStore)(nil)

// SQLStore is the relational provider. The single-row bootstrap table is the
// atomic gate for bootstrap-only signups: its primary key lets exactly one
// concurrent transaction insert row 1.
type SQLStore struct {
	db      *sql.DB
	dialect *Dialect

	opts      Options
	dummyHash string
}

func NewSQLStore(db *sql.DB, d *Dialect, opts Options) (*SQLStore, error) {
	opts = opts.withDefaults()

	dummy, err := dummyHash(opts.Hasher)
	if err != nil {
		return nil, err
	}

	return &SQLStore{db: db, dialect: d, opts: opts, dummyHash: dummy}, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, username, password string) (string, error) {
	if err := validateNewUser(username, password); err != nil {
		return "", err
	}

	hash, err := hashPassword(s.opts.Hasher, password)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	id := uuid.NewString()
	now := s.opts.Now().UTC()
	q := s.dialect.queries

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if s.opts.BootstrapOnly {
			var exists bool
			if err := tx.QueryRowContext(ctx, q.userExists).Scan(&exists); err != nil {
				return err
			}
			if exists {
				return common.ErrBootstrapClosed
			}
			if _, err := tx.ExecContext(ctx, q.closeBootstrap, username, now); err != nil {
				if s.dialect.isUniqueViolation(err) {
					return common.ErrBootstrapClosed
				}
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, q.insertUser, id, username, hash, now); err != nil {
			if s.dialect.isUniqueViolation(err) {
				return common.ErrAlreadyExists
			}
			return err
		}

		if !s.opts.BootstrapOnly {
			if _, err := tx.ExecContext(ctx, q.recordBootstrap, username, now); err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, common.ErrBootstrapClosed), errors.Is(err, common.ErrAlreadyExists):
		return "", err
	default:
		return "", unavailable("create user", err)
	}
}

func (s *SQLStore) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	found := true
	var hash string
	err := s.db.QueryRowContext(ctx, s.dialect.queries.findHash, username).Scan(&hash)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return false, unavailable("verify credentials", err)
		}
		found = false
		hash = s.dummyHash
	}

	match, err := cryptox.Verify(hash, []byte(password))
	if err != nil {
		return false, fmt.Errorf("verify credentials: %w", err)
	}

	return found && match, nil
}

func (s *SQLStore) UserExistsAny(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var exists bool
	if err := s.db.QueryRowContext(ctx, s.dialect.queries.userExists).Scan(&exists); err != nil {
		return false, unavailable("user exists", err)
	}
	return exists, nil
}

// gooseUp is a seam for testing the migration runner.
var gooseUp = func(ctx context.Context, d goose.Dialect, db *sql.DB, dir string) error {
	fsys, err := migrations.For(dir)
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(d, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// RunMigrations brings the schema for d up to date.
func RunMigrations(ctx context.Context, db *sql.DB, d *Dialect) error {
	if err := gooseUp(ctx, d.Goose, db, d.Name); err != nil {
		return fmt.Errorf("migrate %s: %w", d.Name, err)
	}
	return nil
}
