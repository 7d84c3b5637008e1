// Package providers builds the credential store and app registry selected
// by configuration. The rest of the server only sees the credentials.Store
// and registry.Registry interfaces, so mock and real backends are
// interchangeable.
package providers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/selfhostdash/internal/cryptox"
	"github.com/dmitrijs2005/selfhostdash/internal/filex"
	"github.com/dmitrijs2005/selfhostdash/internal/logging"
	"github.com/dmitrijs2005/selfhostdash/internal/server/config"
	"github.com/dmitrijs2005/selfhostdash/internal/server/credentials"
	"github.com/dmitrijs2005/selfhostdash/internal/server/registry"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Providers owns the backends and the database handle behind them.
type Providers struct {
	Store    credentials.Store
	Registry registry.Registry

	db *sql.DB
}

// openDB is a seam for tests.
var openDB = sql.Open

// runMigrations is a seam for tests.
var runMigrations = credentials.RunMigrations

// New builds both providers. On error nothing is left open.
func New(ctx context.Context, c *config.Config, l logging.Logger) (*Providers, error) {
	hasher, err := cryptox.NewHasher(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	p := &Providers{}

	if err := p.initStore(ctx, c, hasher, l); err != nil {
		return nil, err
	}

	reg, err := newRegistry(c, l)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	p.Registry = reg

	return p, nil
}

func (p *Providers) initStore(ctx context.Context, c *config.Config, h cryptox.Hasher, l logging.Logger) error {
	opts := credentials.Options{
		Hasher:        h,
		BootstrapOnly: c.BootstrapOnly,
		Timeout:       c.StoreTimeout,
	}

	if c.CredentialBackend == config.BackendMock {
		s, err := credentials.NewMemoryStore(opts)
		if err != nil {
			return err
		}
		l.Info(ctx, "using in-memory credential store")
		p.Store = s
		return nil
	}

	d, err := credentials.DialectFor(c.CredentialBackend)
	if err != nil {
		return err
	}

	if d == credentials.SQLite {
		if path := sqliteFilePath(c.DatabaseDSN); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return err
			}
		}
	}

	dsn := c.DatabaseDSN
	if d == credentials.SQLite {
		dsn = withBusyTimeout(dsn)
	}

	db, err := openDB(d.Driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.Name, err)
	}
	if d == credentials.SQLite {
		// one writer at a time; concurrent signups queue on the pool
		db.SetMaxOpenConns(1)
	}

	if err := runMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return err
	}

	s, err := credentials.NewSQLStore(db, d, opts)
	if err != nil {
		_ = db.Close()
		return err
	}

	l.Info(ctx, "using sql credential store", "dialect", d.Name)
	p.Store = s
	p.db = db
	return nil
}

func newRegistry(c *config.Config, l logging.Logger) (registry.Registry, error) {
	switch c.RegistryBackend {
	case config.BackendMock:
		return registry.NewStaticRegistry(c.MockApps)
	case config.BackendFS:
		return registry.NewFSRegistry(os.DirFS(c.AppsDir), c.IconsRoot, c.RegistryTimeout, l), nil
	default:
		return nil, fmt.Errorf("unknown registry backend %q", c.RegistryBackend)
	}
}

// Close releases the database handle, if any.
func (p *Providers) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

// sqliteFilePath extracts the on-disk path from a sqlite DSN. In-memory
// databases have none.
func sqliteFilePath(dsn string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	return path
}

// sqliteBusyTimeout is how long a sqlite connection waits on another
// process's lock before failing with SQLITE_BUSY.
const sqliteBusyTimeout = 5 * time.Second

// withBusyTimeout adds a busy_timeout pragma to a sqlite DSN unless the DSN
// already sets one.
func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", dsn, sep, sqliteBusyTimeout.Milliseconds())
}
