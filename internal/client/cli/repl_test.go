package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	role models.Role

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) identity() models.Role { return f.role }

func (f *fakeExec) Login(context.Context) error {
	f.role = models.RoleStudent
	return f.record("login")
}
func (f *fakeExec) Verify(context.Context) error { return f.record("verify") }
func (f *fakeExec) Logout(context.Context) error {
	f.role = ""
	return f.record("logout")
}
func (f *fakeExec) Whoami(context.Context) error   { return f.record("whoami") }
func (f *fakeExec) Prefs(context.Context) error    { return f.record("prefs") }
func (f *fakeExec) ListDocs(context.Context) error { return f.record("docs") }
func (f *fakeExec) ShowDoc(_ context.Context, id string) error {
	return f.record("doc " + id)
}
func (f *fakeExec) Similar(_ context.Context, id string) error {
	return f.record("similar " + id)
}
func (f *fakeExec) DeleteDoc(_ context.Context, id string) error {
	return f.record("delete " + id)
}
func (f *fakeExec) Upload(_ context.Context, path string, force bool) error {
	call := "upload " + path
	if force {
		call += " force"
	}
	return f.record(call)
}
func (f *fakeExec) Queue(context.Context) error { return f.record("queue") }
func (f *fakeExec) Dismiss(_ context.Context, id string) error {
	return f.record("dismiss " + id)
}
func (f *fakeExec) Wiki(_ context.Context, q string) error   { return f.record("wiki " + q) }
func (f *fakeExec) Ask(_ context.Context, q string) error    { return f.record("ask " + q) }
func (f *fakeExec) Search(_ context.Context, q string) error { return f.record("search " + q) }
func (f *fakeExec) Summary(_ context.Context, t string) error {
	return f.record(strings.TrimSpace("summary " + t))
}
func (f *fakeExec) Feedback(_ context.Context, verdict, comment string) error {
	return f.record(strings.TrimSpace("feedback " + verdict + " " + comment))
}
func (f *fakeExec) Quiz(_ context.Context, topic string) error  { return f.record("quiz " + topic) }
func (f *fakeExec) Drill(_ context.Context, topic string) error { return f.record("drill " + topic) }
func (f *fakeExec) Dashboard(context.Context) error { return f.record("dashboard") }
func (f *fakeExec) Analytics(context.Context) error { return f.record("analytics") }
func (f *fakeExec) Users(context.Context) error     { return f.record("users") }
func (f *fakeExec) AddUser(context.Context) error   { return f.record("adduser") }
func (f *fakeExec) DelUser(_ context.Context, id string) error {
	return f.record("deluser " + id)
}
func (f *fakeExec) Performance(context.Context) error { return f.record("perf") }
func (f *fakeExec) ResetStore(context.Context) error  { return f.record("reset") }

func silenceOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func runWith(t *testing.T, exec *fakeExec, lines ...string) {
	t.Helper()
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, sc)
}

func TestRunREPL_DispatchWithArguments(t *testing.T) {
	silenceOutput(t)
	exec := &fakeExec{role: models.RoleStudent}

	runWith(t, exec,
		"docs",
		"doc d1",
		"upload notes.pdf force",
		"wiki graph theory",
		"ask what is a b-tree",
		"summary",
		"quiz graph theory",
		"feedback up nice one",
		"exit",
	)

	require.Equal(t, []string{
		"docs",
		"doc d1",
		"upload notes.pdf force",
		"wiki graph theory",
		"ask what is a b-tree",
		"summary",
		"quiz graph theory",
		"feedback up nice one",
	}, exec.calls)
}

func TestRunREPL_GuardBlocksAnonymous(t *testing.T) {
	silenceOutput(t)
	exec := &fakeExec{}

	runWith(t, exec, "docs", "dashboard", "users", "quiz algebra", "login", "docs", "exit")

	require.Equal(t, []string{"login", "docs"}, exec.calls,
		"protected commands must not dispatch before login")
}

func TestRunREPL_GuardBlocksStudentFromAdmin(t *testing.T) {
	silenceOutput(t)
	exec := &fakeExec{role: models.RoleStudent}

	runWith(t, exec, "users", "adduser", "perf", "reset", "dashboard", "exit")

	require.Equal(t, []string{"dashboard"}, exec.calls)
}

func TestRunREPL_AdminHasFullAccess(t *testing.T) {
	silenceOutput(t)
	exec := &fakeExec{role: models.RoleAdmin}

	runWith(t, exec, "users", "deluser 7", "perf", "reset", "docs", "exit")

	require.Equal(t, []string{"users", "deluser 7", "perf", "reset", "docs"}, exec.calls)
}

func TestRunREPL_GuardReevaluatedAfterLogout(t *testing.T) {
	silenceOutput(t)
	exec := &fakeExec{role: models.RoleStudent}

	runWith(t, exec, "docs", "logout", "docs", "exit")

	require.Equal(t, []string{"docs", "logout"}, exec.calls,
		"a decision must never be cached across a logout")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	silenceOutput(t)
	exec := &fakeExec{role: models.RoleStudent}

	runWith(t, exec, "doc", "dismiss", "deluser", "quiz", "feedback", "feedback sideways", "foobar", "quit")

	require.Empty(t, exec.calls)
}
