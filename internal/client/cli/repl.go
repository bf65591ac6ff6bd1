package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/smartcampus/assistant-cli/internal/client/guard"
	"github.com/smartcampus/assistant-cli/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate. The real
// App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	identity() models.Role

	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Prefs(ctx context.Context) error

	ListDocs(ctx context.Context) error
	ShowDoc(ctx context.Context, id string) error
	Similar(ctx context.Context, id string) error
	DeleteDoc(ctx context.Context, id string) error
	Upload(ctx context.Context, path string, force bool) error
	Queue(ctx context.Context) error
	Dismiss(ctx context.Context, id string) error
	Wiki(ctx context.Context, query string) error

	Ask(ctx context.Context, question string) error
	Search(ctx context.Context, query string) error
	Summary(ctx context.Context, topic string) error
	Feedback(ctx context.Context, verdict, comment string) error

	Quiz(ctx context.Context, topic string) error
	Drill(ctx context.Context, topic string) error

	Dashboard(ctx context.Context) error
	Analytics(ctx context.Context) error

	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	DelUser(ctx context.Context, id string) error
	Performance(ctx context.Context) error
	ResetStore(ctx context.Context) error
}

// commandRoutes maps REPL commands onto guarded routes. Commands absent from
// the map are public. Every dispatch re-evaluates the guard against the live
// identity, never a cached decision.
var commandRoutes = map[string]guard.Route{
	"logout": {Path: guard.DashboardRoute, RequireAuth: true},
	"whoami": {Path: guard.DashboardRoute, RequireAuth: true},
	"prefs":  {Path: guard.DashboardRoute, RequireAuth: true},

	"docs":    {Path: "/documents", RequireAuth: true},
	"doc":     {Path: "/documents", RequireAuth: true},
	"similar": {Path: "/documents", RequireAuth: true},
	"delete":  {Path: "/documents", RequireAuth: true},
	"upload":  {Path: "/documents", RequireAuth: true},
	"queue":   {Path: "/documents", RequireAuth: true},
	"dismiss": {Path: "/documents", RequireAuth: true},
	"wiki":    {Path: "/documents", RequireAuth: true},

	"ask":      {Path: "/chat", RequireAuth: true},
	"search":   {Path: "/chat", RequireAuth: true},
	"summary":  {Path: "/chat", RequireAuth: true},
	"feedback": {Path: "/chat", RequireAuth: true},

	"quiz":  {Path: "/quiz", RequireAuth: true},
	"drill": {Path: "/quiz", RequireAuth: true},

	"dashboard": {Path: guard.DashboardRoute, RequireAuth: true},
	"analytics": {Path: "/analytics", RequireAuth: true},

	"users":   {Path: guard.AdminRoute, RequireAuth: true, AdminOnly: true},
	"adduser": {Path: guard.AdminRoute, RequireAuth: true, AdminOnly: true},
	"deluser": {Path: guard.AdminRoute, RequireAuth: true, AdminOnly: true},
	"perf":    {Path: guard.AdminRoute, RequireAuth: true, AdminOnly: true},
	"reset":   {Path: guard.AdminRoute, RequireAuth: true, AdminOnly: true},
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, checks the command's route guard and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sca %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if route, guarded := commandRoutes[cmd]; guarded {
			if d := guard.Evaluate(route, a.identity()); !d.Allowed {
				switch d.RedirectTo {
				case guard.LoginRoute:
					printlnFn("Please log in first (type 'login')")
				default:
					printlnFn("Admin access required; try 'dashboard' instead")
				}
				continue
			}
		}

		switch cmd {
		case "help":
			switch a.identity() {
			case models.RoleAdmin:
				printlnFn("Available commands: docs, doc <id>, similar <id>, delete <id>, upload <path> [force], queue, dismiss <id>, wiki <query>, ask <question>, search <query>, summary [topic], feedback <up|down|flag> [comment], quiz <topic>, drill <topic>, dashboard, analytics, users, adduser, deluser <id>, perf, reset, prefs, whoami, logout, exit")
			case models.RoleStudent:
				printlnFn("Available commands: docs, doc <id>, similar <id>, delete <id>, upload <path> [force], queue, dismiss <id>, wiki <query>, ask <question>, search <query>, summary [topic], feedback <up|down|flag> [comment], quiz <topic>, drill <topic>, dashboard, analytics, prefs, whoami, logout, exit")
			default:
				printlnFn("Available commands: login, verify, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "prefs":
			_ = a.Prefs(ctx)

		case "docs", "list":
			_ = a.ListDocs(ctx)

		case "doc", "show":
			if len(args) == 0 {
				printlnFn("Usage: doc <id>")
				continue
			}
			_ = a.ShowDoc(ctx, args[0])

		case "similar":
			if len(args) == 0 {
				printlnFn("Usage: similar <id>")
				continue
			}
			_ = a.Similar(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.DeleteDoc(ctx, args[0])

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path> [force]")
				continue
			}
			force := len(args) > 1 && args[1] == "force"
			_ = a.Upload(ctx, args[0], force)

		case "queue":
			_ = a.Queue(ctx)

		case "dismiss":
			if len(args) == 0 {
				printlnFn("Usage: dismiss <id>")
				continue
			}
			_ = a.Dismiss(ctx, args[0])

		case "wiki":
			if len(args) == 0 {
				printlnFn("Usage: wiki <query>")
				continue
			}
			_ = a.Wiki(ctx, strings.Join(args, " "))

		case "ask":
			if len(args) == 0 {
				printlnFn("Usage: ask <question>")
				continue
			}
			_ = a.Ask(ctx, strings.Join(args, " "))

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "summary":
			_ = a.Summary(ctx, strings.Join(args, " "))

		case "feedback":
			if len(args) == 0 || (args[0] != "up" && args[0] != "down" && args[0] != "flag") {
				printlnFn("Usage: feedback <up|down|flag> [comment]")
				continue
			}
			_ = a.Feedback(ctx, args[0], strings.Join(args[1:], " "))

		case "quiz":
			if len(args) == 0 {
				printlnFn("Usage: quiz <topic>")
				continue
			}
			_ = a.Quiz(ctx, strings.Join(args, " "))

		case "drill":
			if len(args) == 0 {
				printlnFn("Usage: drill <topic>")
				continue
			}
			_ = a.Drill(ctx, strings.Join(args, " "))

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "analytics":
			_ = a.Analytics(ctx)

		case "users":
			_ = a.Users(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "deluser":
			if len(args) == 0 {
				printlnFn("Usage: deluser <id>")
				continue
			}
			_ = a.DelUser(ctx, args[0])

		case "perf":
			_ = a.Performance(ctx)

		case "reset":
			_ = a.ResetStore(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
