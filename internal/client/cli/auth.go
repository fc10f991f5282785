package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gymtrack/internal/client/models"
	"gymtrack/internal/client/session"
	"gymtrack/internal/validatex"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a profile and creates an account. When the backend
// returns credentials the user is logged in right away; otherwise they are
// asked to log in explicitly.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := validatex.Email(email); err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	if err := validatex.Password(password); err != nil {
		return err
	}

	reg := models.Registration{Email: email, Password: string(password), FullName: fullName}
	if _, err := a.store.Register(ctx, reg); err != nil {
		if errors.Is(err, session.ErrNoCredentials) {
			printlnFn("Account created, please log in.")
			return nil
		}
		return err
	}

	printlnFn("Welcome,", email)
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// is persisted and, for admin accounts, the admin console is announced —
// the CLI's counterpart of the web client's redirect-if-admin.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	_, err = a.store.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return err
	}

	snap := a.store.Snapshot()
	printlnFn("Logged in as", snap.User.Email)
	if session.IsAdmin(snap.User) {
		printlnFn("Admin console available (type 'admin').")
	}
	return nil
}

// Logout clears the session; running it while logged out is harmless.
func (a *App) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

// ForgotPassword drives the OTP reset flow: request a code, then exchange
// it for a new password.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.auth.ForgotPassword(ctx, email); err != nil {
		return err
	}
	printlnFn("Check your inbox for the reset code.")

	code, err := getSimpleText(a.reader, "Enter reset code", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	if err := validatex.Password(password); err != nil {
		return err
	}

	req := models.ResetPasswordRequest{Email: email, OTPCode: code, NewPassword: string(password)}
	if err := a.auth.ResetPassword(ctx, req); err != nil {
		return err
	}
	printlnFn("Password updated, please log in.")
	return nil
}

// Whoami prints the current identity and token expiry.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.store.Snapshot()
	if !snap.IsAuthenticated() {
		printlnFn("Not logged in.")
		return nil
	}

	u := snap.User
	printlnFn(fmt.Sprintf("%s (%s)", u.Email, u.FullName))
	if u.Role != "" {
		printlnFn("Role:", u.Role)
	}
	if session.IsAdmin(u) {
		printlnFn("Admin: yes")
	}
	if !snap.ExpiresAt.IsZero() {
		printlnFn("Session expires:", snap.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
