package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"gymtrack/internal/client/session"
)

// promptStatus renders the session part of the prompt, e.g.
// "(a@b.com admin)" or "" when logged out.
func promptStatus(snap session.Snapshot) string {
	if !snap.IsAuthenticated() {
		return ""
	}
	s := snap.User.Email
	if session.IsAdmin(snap.User) {
		s += " admin"
	}
	if !snap.ExpiresAt.IsZero() && time.Until(snap.ExpiresAt) < 5*time.Minute {
		s += " expiring"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) getStatus() string {
	return a.status
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gymtrack (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
