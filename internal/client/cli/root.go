package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if a.userName == "" {
		return "(logged in)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Root greets the user, reports whether signup is open and runs the REPL on
// the app's input until exit or EOF.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to selfhostdash CLI (type 'help' for commands)")
	_ = a.Status(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}
