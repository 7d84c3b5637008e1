package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/selfhostdash/internal/client/client"
	"github.com/dmitrijs2005/selfhostdash/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Status prints whether signup is open and who is logged in.
func (a *App) Status(ctx context.Context) error {
	st, err := a.client.Status(ctx)
	if err != nil {
		a.report("status", err)
		return err
	}

	if st.SignupOpen {
		fmt.Fprintln(a.out, "Signup is open: use 'signup' to create an account")
	} else {
		fmt.Fprintln(a.out, "Signup is closed")
	}
	// the server ignores a stale token here, so an empty name means it expired
	if a.isLoggedIn() && st.UserName != "" {
		a.userName = st.UserName
		fmt.Fprintf(a.out, "Logged in as %s\n", st.UserName)
	} else {
		a.userName = ""
		fmt.Fprintln(a.out, "Not logged in")
	}
	return nil
}

// Signup creates an account and logs in with it.
func (a *App) Signup(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Signup(ctx, userName, password); err != nil {
		a.report("signup", err)
		return err
	}

	a.userName = userName
	fmt.Fprintf(a.out, "Signed up and logged in as %s\n", userName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Login failed: invalid username or password")
		} else {
			a.report("login", err)
		}
		return err
	}

	a.userName = userName
	fmt.Fprintf(a.out, "Logged in as %s\n", userName)
	return nil
}

// Logout forgets the session locally even when the server is unreachable.
func (a *App) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.userName = ""
	if err != nil {
		a.report("logout", err)
		fmt.Fprintln(a.out, "Logged out locally")
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) report(op string, err error) {
	var msg string
	switch {
	case errors.Is(err, client.ErrUnavailable):
		msg = "server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized):
		a.userName = ""
		msg = "not logged in or session expired"
	case errors.Is(err, client.ErrSignupClosed):
		msg = "signup is closed, log in with an existing account"
	case errors.Is(err, client.ErrAlreadyExists):
		msg = "user already exists"
	case errors.Is(err, client.ErrNotFound):
		msg = "no such app"
	default:
		msg = err.Error()
	}
	fmt.Fprintf(a.out, "%s failed: %s\n", op, msg)
}
