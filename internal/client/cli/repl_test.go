package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Open(ctx context.Context, id string) error {
	f.calls = append(f.calls, "open")
	f.arg = id
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_CommandsDispatch(t *testing.T) {
	out := capturePrintln(t)

	input := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help",
		"status",
		"login",
		"",
		"help",
		"apps",
		"l",
		"open calc",
		"open",
		"logout",
		"foobar",
		"exit",
		"login",
	}, "\n")))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "st" }, input)

	require.Equal(t, []string{"status", "login", "list", "list", "open", "logout"}, exec.calls)
	require.Equal(t, "calc", exec.arg)

	joined := strings.Join(*out, "\n")
	require.Contains(t, joined, "dash st> ")
	require.Contains(t, joined, "Available commands: status, signup, login, exit")
	require.Contains(t, joined, "Available commands: status, (l)ist, open <id>, logout, exit")
	require.Contains(t, joined, "Usage: open <id>")
	require.Contains(t, joined, "Unknown command: foobar")
	require.Contains(t, joined, "Bye!")
}

func TestRunREPL_EOFStops(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("signup")))

	require.Equal(t, []string{"signup"}, exec.calls)
}

func TestRunREPL_CancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status\n")))

	require.Empty(t, exec.calls)
}
