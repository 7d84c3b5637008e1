package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/selfhostdash/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-b string     credential backend: mock, postgres, sqlite
//	-d string     database DSN
//	-r string     registry backend: mock, fs
//	-p string     apps directory for the fs registry
//	-i string     icons root
//	-o bool       bootstrap-only signup
//	-s bool       single session per user
//	-t duration   session TTL (e.g., "12h")
//	-w duration   session sweep interval
//	-x string     password hasher: argon2id, bcrypt
//	-g string     log backend: slog, zerolog
//	-l string     log level
//
// Boolean flags must be given as -o=false; a separate value would be
// taken as a positional argument.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-b", "-d", "-r", "-p", "-i", "-o", "-s", "-t", "-w", "-x", "-g", "-l",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.CredentialBackend, "b", config.CredentialBackend, "credential backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RegistryBackend, "r", config.RegistryBackend, "registry backend")
	fs.StringVar(&config.AppsDir, "p", config.AppsDir, "apps directory")
	fs.StringVar(&config.IconsRoot, "i", config.IconsRoot, "icons root")
	fs.BoolVar(&config.BootstrapOnly, "o", config.BootstrapOnly, "only allow the first signup")
	fs.BoolVar(&config.SingleSession, "s", config.SingleSession, "one session per user")
	fs.DurationVar(&config.SessionTTL, "t", config.SessionTTL, "session TTL")
	fs.DurationVar(&config.SessionSweepInterval, "w", config.SessionSweepInterval, "session sweep interval")
	fs.StringVar(&config.PasswordHasher, "x", config.PasswordHasher, "password hasher")
	fs.StringVar(&config.LogBackend, "g", config.LogBackend, "log backend")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
