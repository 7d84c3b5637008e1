// Package cli provides the interactive dashboard command-line client.
//
// It wires configuration, the gRPC client and a small REPL. Typical flow:
// check whether signup is open, sign up or log in, list the catalog and
// resolve an app to its launch target.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
