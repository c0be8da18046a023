package cli

import (
	"context"
	"fmt"
	"os"

	"textmatch/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an anonymous display name, a password, and an
// optional email, then creates the account. Registration does not log the
// user in; they authenticate with a separate login.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Choose an anonymous name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	email, err := getSimpleText(a.reader, "Email (optional, for account recovery)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, name, string(password), email); err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Account created. You can log in now.")
	return nil
}

// Login prompts for credentials, authenticates, and starts the session's
// background work. The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your anonymous name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, name, string(password)); err != nil {
		return a.fail(ctx, err)
	}

	user, _ := a.auth.CurrentUser()
	printlnFn(fmt.Sprintf("Welcome, %s!", user.Username))
	a.enterSession(ctx)
	return nil
}

// Logout ends the session: pollers stop, cached lists drop, and the stored
// token pair is cleared.
func (a *App) Logout(ctx context.Context) error {
	a.leaveSession()
	if err := a.auth.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the stored session's identity and, when the access token
// carries a readable expiry, the time it expires.
func (a *App) WhoAmI(ctx context.Context) error {
	info, err := a.auth.SessionInfo(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Logged in as %s (user id %d)", info.User.Username, info.User.UserID))
	if !info.AccessTokenExpiresAt.IsZero() {
		printlnFn("Access token expires at", info.AccessTokenExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
