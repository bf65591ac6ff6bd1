package cli

import (
	"context"

	"github.com/smartcampus/assistant-cli/internal/client/api"
)

// wipeByteArray zeroes a sensitive byte slice in place.
func wipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// snippet shortens long passages for one-line listings.
func snippet(s string) string {
	const max = 120
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// report prints a command failure. When the backend rejected the token the
// local session is dropped so the guards send the user back to login.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthenticated(err) {
		_ = a.auth.DropSession(ctx)
		printlnFn("Session expired, please log in again")
		return err
	}
	printlnFn("Error:", err.Error())
	return err
}
