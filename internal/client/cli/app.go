package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/config"
	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/client/services"
	"github.com/smartcampus/assistant-cli/internal/client/session"
	"github.com/smartcampus/assistant-cli/internal/client/storage"
	"github.com/smartcampus/assistant-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode reflects the last known backend reachability, maintained by the
// online-status watcher.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionView is the slice of the session store the CLI reads and writes.
// Login/logout mutations go through the auth service instead.
type sessionView interface {
	Session() models.Session
	Identity() models.Role
	Preferences() models.Preferences
	SetPreferences(ctx context.Context, p models.Preferences) error
}

type App struct {
	config *config.Config
	log    logging.Logger
	client api.Client
	db     *sql.DB
	store  sessionView

	auth      services.AuthService
	uploads   services.UploadService
	dashboard services.DashboardService
	admin     services.AdminService

	// mode is written by the watcher goroutine and by login, read by the
	// REPL prompt; always go through setMode/currentMode.
	modeMu sync.Mutex
	mode   Mode

	reader *bufio.Reader

	// conversation accumulates prior turns for follow-up questions.
	conversation []models.ConversationTurn
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	store, err := session.Open(ctx, db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(api.Options{
		BaseURL:       c.ServerEndpointAddr,
		Token:         store.Token,
		Logger:        log,
		Timeout:       c.RequestTimeout,
		UploadTimeout: c.UploadTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:    c,
		log:       log,
		client:    apiClient,
		db:        db,
		store:     store,
		auth:      services.NewAuthService(apiClient, store, log),
		uploads:   services.NewUploadService(apiClient, db, log),
		dashboard: services.NewDashboardService(apiClient, log),
		admin:     services.NewAdminService(apiClient, log),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()
	if changed {
		printlnFn("Switched to", string(mode), "mode")
	}
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) getStatus() string {
	s := ""
	if sess := a.store.Session(); sess.Authenticated() {
		s = sess.Profile.RollNo + " "
	}
	if mode := a.currentMode(); mode != "" {
		s += string(mode)
	}
	if s = strings.TrimSpace(s); s != "" {
		s = "(" + s + ")"
	}
	return s
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	defer a.db.Close()

	printlnFn("Smart Campus Assistant (type 'help' for commands)")
	if sess := a.store.Session(); sess.Authenticated() {
		printlnFn("Welcome back,", sess.Profile.FullName)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// StartOnlineStatusWatcher periodically pings the backend and flips Mode
// between online and offline. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				// never announce offline before the first successful ping
				if a.currentMode() == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
