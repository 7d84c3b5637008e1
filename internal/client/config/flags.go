package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/selfhostdash/internal/flagx"
)

// parseFlags populates Config from -a and -t. Other arguments are filtered
// out with flagx.FilterArgs so the JSON flags do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
