package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) identity() models.Role {
	return a.store.Identity()
}

// Login prompts for credentials and authenticates. On a first login the full
// name registers the account; returning users leave it empty. A transport
// failure flips the app into offline mode instead of looping the prompt.
func (a *App) Login(ctx context.Context) error {
	university, err := getSimpleText(a.reader, "Enter university", os.Stdout)
	if err != nil {
		return err
	}
	rollNo, err := getSimpleText(a.reader, "Enter roll number", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name (first login only, otherwise leave empty)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeByteArray(password)

	sess, err := a.auth.Login(ctx, university, rollNo, fullName, password)
	if err != nil {
		if errors.Is(err, api.ErrUnreachable) || errors.Is(err, api.ErrTimeout) {
			a.setMode(ModeOffline)
		}
		return a.report(ctx, err)
	}

	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Logged in as %s (%s)", sess.Profile.FullName, sess.Identity()))
	return nil
}

// Verify checks whether a roll number is registered without logging in.
func (a *App) Verify(ctx context.Context) error {
	university, err := getSimpleText(a.reader, "Enter university", os.Stdout)
	if err != nil {
		return err
	}
	rollNo, err := getSimpleText(a.reader, "Enter roll number", os.Stdout)
	if err != nil {
		return err
	}

	ok, msg, err := a.auth.Verify(ctx, university, rollNo)
	if err != nil {
		return a.report(ctx, err)
	}
	if ok {
		printlnFn("Registered:", msg)
	} else {
		printlnFn("Not registered:", msg)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	sess := a.store.Session()
	if !sess.Authenticated() {
		printlnFn("Not logged in")
		return nil
	}
	p := sess.Profile
	printlnFn(fmt.Sprintf("%s %s (%s, %s)", p.RollNo, p.FullName, p.University, sess.Identity()))
	if name := a.store.Preferences().DisplayName; name != "" {
		printlnFn("Display name:", name)
	}
	return nil
}

// Prefs edits the per-user UI preferences. Empty answers keep current values.
func (a *App) Prefs(ctx context.Context) error {
	cur := a.store.Preferences()

	name, err := getSimpleText(a.reader, fmt.Sprintf("Display name [%s]", cur.DisplayName), os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		cur.DisplayName = name
	}

	notif, err := getSimpleText(a.reader, "Notifications (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if notif != "" {
		cur.Notifications = strings.EqualFold(notif, "y")
	}

	if err := a.store.SetPreferences(ctx, cur); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Preferences saved")
	return nil
}
