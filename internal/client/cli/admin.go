package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/smartcampus/assistant-cli/internal/client/api"
)

func (a *App) Users(ctx context.Context) error {
	users, err := a.admin.Users(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(users) == 0 {
		printlnFn("No users")
		return nil
	}
	for _, u := range users {
		role := "student"
		if u.IsAdmin {
			role = "admin"
		}
		state := "active"
		if !u.IsActive {
			state = "disabled"
		}
		printlnFn(fmt.Sprintf("%4d %-12s %-25s %-12s %-7s %s",
			u.ID, u.RollNo, u.FullName, u.University, role, state))
	}
	return nil
}

func (a *App) AddUser(ctx context.Context) error {
	university, err := getSimpleText(a.reader, "University", os.Stdout)
	if err != nil {
		return err
	}
	rollNo, err := getSimpleText(a.reader, "Roll number", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Full name", os.Stdout)
	if err != nil {
		return err
	}
	isAdmin, err := getSimpleText(a.reader, "Admin account? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeByteArray(password)

	user, err := a.admin.CreateUser(ctx, api.CreateUserRequest{
		University: university,
		RollNo:     rollNo,
		FullName:   fullName,
		Password:   string(password),
		IsAdmin:    strings.EqualFold(isAdmin, "y"),
	})
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(fmt.Sprintf("Created user %d (%s)", user.ID, user.RollNo))
	return nil
}

func (a *App) DelUser(ctx context.Context, idStr string) error {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		printlnFn("Usage: deluser <numeric id>")
		return err
	}
	if err := a.admin.DeleteUser(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Deleted user", id)
	return nil
}

// ResetStore wipes the whole server-side document store. The prompt demands
// a literal "yes"; anything else aborts.
func (a *App) ResetStore(ctx context.Context) error {
	confirm, err := getSimpleText(a.reader,
		"This deletes every stored document for ALL users. Type 'yes' to continue", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		printlnFn("Aborted")
		return nil
	}

	stats, err := a.admin.ResetStore(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(fmt.Sprintf("Store reset; %d documents remain", stats.Docs))
	return nil
}

func (a *App) Performance(ctx context.Context) error {
	rows, err := a.admin.Performance(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(rows) == 0 {
		printlnFn("No activity recorded")
		return nil
	}
	for _, r := range rows {
		printlnFn(fmt.Sprintf("%-12s %-25s %-12s logins: %-4d last active: %s",
			r.RollNo, r.FullName, r.University, r.LoginCount, r.LastActive))
	}
	return nil
}
