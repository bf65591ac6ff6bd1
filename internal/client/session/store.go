// Package session owns the persisted authentication state: the bearer token,
// the active identity (student or admin profile, mutually exclusive) and the
// UI preferences blob. It is the single writer of those keys and the only
// component allowed to purge per-user cached state on identity switch.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/client/repositories/metadata"
	"github.com/smartcampus/assistant-cli/internal/client/repositories/uploads"
	"github.com/smartcampus/assistant-cli/internal/dbx"
	"github.com/smartcampus/assistant-cli/internal/logging"
)

// Storage keys, kept identical to the original client layout.
const (
	keyToken       = "token"
	keyStudent     = "student"
	keyAdmin       = "admin"
	keyPrefs       = "prefs"
	keyFingerprint = "identity_fingerprint"
)

// Store is the session/tenant store. Reads are served from memory; every
// mutation is committed to the local database first and only then made
// visible, so readers never observe a partially written session.
type Store struct {
	mu    sync.RWMutex
	db    *sql.DB
	log   logging.Logger
	now   func() time.Time
	cur   models.Session
	prefs models.Preferences
}

// Open loads the persisted session and enforces the cross-tenant isolation
// invariant: if the stored identity fingerprint differs from the identity
// about to be shown, all per-user cached state is purged before any caller
// can read it. Expired or unreadable tokens degrade to Anonymous.
func Open(ctx context.Context, db *sql.DB, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	s := &Store{db: db, log: log, now: time.Now}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(s.db)

	tokenB, err := repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}
	studentB, err := repo.Get(ctx, keyStudent)
	if err != nil {
		return err
	}
	adminB, err := repo.Get(ctx, keyAdmin)
	if err != nil {
		return err
	}

	loaded := models.Session{Token: string(tokenB)}
	corrupt := false
	switch {
	case studentB != nil && adminB != nil:
		// Both role keys present violates the exclusivity invariant;
		// treat the whole session as corrupt.
		s.log.Warn(ctx, "both identity keys present, resetting session")
		corrupt = true
	case studentB != nil:
		if err := json.Unmarshal(studentB, &loaded.Profile); err != nil {
			s.log.Warn(ctx, "unreadable student profile, resetting session", "err", err)
			corrupt = true
		}
	case adminB != nil:
		if err := json.Unmarshal(adminB, &loaded.Profile); err != nil {
			s.log.Warn(ctx, "unreadable admin profile, resetting session", "err", err)
			corrupt = true
		}
	default:
		loaded.Token = ""
	}
	if corrupt {
		// delete the offending keys too, or every start re-detects this
		loaded = models.Session{}
		if err := s.persistClear(ctx); err != nil {
			return err
		}
	}

	if loaded.Authenticated() {
		claims, err := parseToken(loaded.Token)
		switch {
		case err != nil || claims.expired(s.now()):
			s.log.Info(ctx, "stored token invalid or expired, logging out")
			loaded = models.Session{}
			if err := s.persistClear(ctx); err != nil {
				return err
			}
		case claims.IsAdmin != loaded.Profile.IsAdmin:
			// The profile blob disagrees with the token about the role;
			// trust neither.
			s.log.Warn(ctx, "stored profile role disagrees with token, resetting session")
			loaded = models.Session{}
			if err := s.persistClear(ctx); err != nil {
				return err
			}
		}
	}

	cur := Fingerprint(loaded)
	prevB, err := repo.Get(ctx, keyFingerprint)
	if err != nil {
		return err
	}
	prev := string(prevB)

	if ShouldPurge(prev, cur) {
		s.log.Info(ctx, "identity switch detected, purging cached state",
			"previous", prev, "current", cur)
		if err := s.purge(ctx, cur); err != nil {
			return err
		}
	} else if cur != "" && prev != cur {
		if err := repo.Set(ctx, keyFingerprint, []byte(cur)); err != nil {
			return err
		}
	}

	prefs, err := s.loadPrefs(ctx, repo)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = loaded
	s.prefs = prefs
	s.mu.Unlock()
	return nil
}

func (s *Store) loadPrefs(ctx context.Context, repo metadata.Repository) (models.Preferences, error) {
	var prefs models.Preferences
	b, err := repo.Get(ctx, keyPrefs)
	if err != nil {
		return prefs, err
	}
	if b != nil {
		if err := json.Unmarshal(b, &prefs); err != nil {
			s.log.Warn(ctx, "unreadable preferences blob, dropping it", "err", err)
			return models.Preferences{}, nil
		}
	}
	return prefs, nil
}

// purge wipes per-user cached collections and records the new fingerprint,
// all in one transaction so a crash cannot leave another user's state behind
// a new fingerprint.
func (s *Store) purge(ctx context.Context, newFingerprint string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := uploads.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyPrefs); err != nil {
			return err
		}
		return repo.Set(ctx, keyFingerprint, []byte(newFingerprint))
	})
}

// Session returns a copy of the current session.
func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Token returns the current bearer token, or "" when anonymous. Handed to
// the HTTP client as its TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// Identity returns the active role, or "" when anonymous.
func (s *Store) Identity() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Identity()
}

// Preferences returns the current UI preferences blob.
func (s *Store) Preferences() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetPreferences persists and publishes a new preferences blob.
func (s *Store) SetPreferences(ctx context.Context, p models.Preferences) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := metadata.NewSQLiteRepository(s.db).Set(ctx, keyPrefs, b); err != nil {
		return err
	}
	s.mu.Lock()
	s.prefs = p
	s.mu.Unlock()
	return nil
}

// Set transitions the store to Authenticated(role). The token, the profile
// blob under its role key, the removal of the opposite role key and any
// isolation purge are committed atomically; the in-memory session flips only
// after the commit.
func (s *Store) Set(ctx context.Context, token string, profile models.Profile) error {
	if token == "" {
		return fmt.Errorf("session: empty token")
	}
	next := models.Session{Token: token, Profile: profile}
	fp := Fingerprint(next)

	repo := metadata.NewSQLiteRepository(s.db)
	prevB, err := repo.Get(ctx, keyFingerprint)
	if err != nil {
		return err
	}
	purged := ShouldPurge(string(prevB), fp)

	profileB, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	roleKey, otherKey := keyStudent, keyAdmin
	if profile.Role() == models.RoleAdmin {
		roleKey, otherKey = keyAdmin, keyStudent
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, roleKey, profileB); err != nil {
			return err
		}
		if err := repo.Delete(ctx, otherKey); err != nil {
			return err
		}
		if purged {
			if err := uploads.NewSQLiteRepository(tx).Clear(ctx); err != nil {
				return err
			}
			if err := repo.Delete(ctx, keyPrefs); err != nil {
				return err
			}
		}
		return repo.Set(ctx, keyFingerprint, []byte(fp))
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = next
	if purged {
		s.prefs = models.Preferences{}
	}
	s.mu.Unlock()
	return nil
}

// Clear transitions back to Anonymous. The fingerprint, preferences and
// upload queue survive logout; they are only wiped when a different identity
// logs in afterwards.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.persistClear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = models.Session{}
	s.mu.Unlock()
	return nil
}

func (s *Store) persistClear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range []string{keyToken, keyStudent, keyAdmin} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
