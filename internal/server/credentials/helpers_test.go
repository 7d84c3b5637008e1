package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/selfhostdash/internal/cryptox"
	"github.com/stretchr/testify/require"
)

// cheap argon2id so the suite stays fast
var testHasher = cryptox.NewArgon2idHasher(cryptox.Argon2idParams{
	Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16,
})

var dbSeq atomic.Int64

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:creds%d?mode=memory&cache=shared&_pragma=busy_timeout(5000)", dbSeq.Add(1))
	db, err := sql.Open(SQLite.Driver, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(context.Background(), db, SQLite))
	return db
}

func newMemory(t *testing.T, bootstrapOnly bool) Store {
	t.Helper()
	s, err := NewMemoryStore(Options{Hasher: testHasher, BootstrapOnly: bootstrapOnly})
	require.NoError(t, err)
	return s
}

func newSQLite(t *testing.T, bootstrapOnly bool) Store {
	t.Helper()
	s, err := NewSQLStore(openSQLite(t), SQLite, Options{Hasher: testHasher, BootstrapOnly: bootstrapOnly})
	require.NoError(t, err)
	return s
}

var providers = []struct {
	name string
	new  func(t *testing.T, bootstrapOnly bool) Store
}{
	{name: "memory", new: newMemory},
	{name: "sqlite", new: newSQLite},
}
