// Package session is the single source of truth for "who is logged in".
// It holds the current identity and bearer token in memory, mirrors them to
// the local database so a restart restores the session, and publishes every
// state change to subscribers. Only this package writes identity data; the
// request pipeline reads the token through the Mirror and triggers
// invalidation on 401 through the unauthorized hook.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
	"gymtrack/internal/client/repositories/localstore"
	"gymtrack/internal/dbx"
	"gymtrack/internal/logging"
)

// Durable mirror keys. Written together on login/register, deleted together
// on logout/401; UpdateUser rewrites only keyUser.
const (
	keyUser  = "user"
	keyToken = "token"
)

// ErrNoCredentials is returned when a login/register response was a 2xx but
// no recognizable identity or token could be located in any supported shape.
// The store is left untouched; authenticating on partial state is never safe.
var ErrNoCredentials = errors.New("no credentials in server response")

// State is the lifecycle phase of the session.
type State int

const (
	StateRestoring State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session handed to subscribers.
type Snapshot struct {
	State   State
	User    *models.User
	Token   string
	Loading bool
	// ExpiresAt is the token expiry peeked from its JWT claims,
	// zero when the token is opaque.
	ExpiresAt time.Time
}

// IsAuthenticated holds iff both the identity and the token are present.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// AuthAPI is the slice of the auth service the store drives. Both calls
// return the raw response body so the store can run payload extraction.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (json.RawMessage, error)
	Register(ctx context.Context, reg models.Registration) (json.RawMessage, error)
}

// Store owns the session state machine:
//
//	Restoring -> Anonymous | Authenticated   (Restore)
//	Anonymous -> Authenticated               (Login/Register with full credentials)
//	Authenticated -> Anonymous               (Logout, 401 invalidation)
//	Authenticated -> Authenticated           (UpdateUser)
//
// A failed login leaves the previous state unchanged.
type Store struct {
	auth AuthAPI
	db   *sql.DB
	repo localstore.Repository
	log  logging.Logger

	mu        sync.Mutex
	state     State
	user      *models.User
	token     string
	loading   bool
	expiresAt time.Time

	subs   map[int]func(Snapshot)
	nextID int
}

// NewStore creates a Store in the Restoring state. Call Restore before use.
func NewStore(auth AuthAPI, db *sql.DB, log logging.Logger) *Store {
	return &Store{
		auth:  auth,
		db:    db,
		repo:  localstore.NewSQLiteRepository(db),
		log:   log,
		state: StateRestoring,
		subs:  make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsAuthenticated is a derived flag, never separately mutated.
func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

// Subscribe registers fn to be called on every state change and returns a
// deterministic unsubscribe function.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Restore loads the mirrored session at startup. A missing or malformed
// record is discarded and treated as "no session"; no error is surfaced for
// corruption, only for storage access failures.
func (s *Store) Restore(ctx context.Context) error {
	userRaw, err := s.repo.Get(ctx, keyUser)
	if err != nil {
		return err
	}
	tokenRaw, err := s.repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}

	var user *models.User
	token := string(tokenRaw)

	if len(userRaw) > 0 && token != "" {
		var u models.User
		if err := json.Unmarshal(userRaw, &u); err != nil {
			s.log.Warn(ctx, "discarding malformed stored session", "err", err)
			_ = s.repo.Delete(ctx, keyUser)
			_ = s.repo.Delete(ctx, keyToken)
			token = ""
		} else {
			user = &u
		}
	} else {
		// Partial state (one key without the other) is never authenticated.
		token = ""
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	if user != nil && token != "" {
		s.state = StateAuthenticated
		_, s.expiresAt = peekClaims(token)
	} else {
		s.state = StateAnonymous
		s.expiresAt = time.Time{}
	}
	s.notifyAndUnlock()
	return nil
}

// Login authenticates against the backend. On success it extracts the
// identity and token from whichever response shape the backend used, merges
// a sibling role claim into the identity, persists both atomically and
// updates memory. The raw response is returned so the caller can do
// UI-specific follow-up (redirect-if-admin). On failure the previous state
// is untouched.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (json.RawMessage, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(ctx, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Register creates an account. It only authenticates the new user when the
// response carries both an identity and a token; a token-less registration
// response yields ErrNoCredentials and the caller should prompt for an
// explicit login.
func (s *Store) Register(ctx context.Context, reg models.Registration) (json.RawMessage, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(ctx, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// adopt extracts credentials from a successful auth response, persists them
// and swaps them into memory. No partial writes: either both keys land in
// the mirror and memory flips to Authenticated, or nothing changes.
func (s *Store) adopt(ctx context.Context, raw json.RawMessage) error {
	body := api.ParseBody(raw)

	userRaw, okUser := body.User()
	token, okToken := body.Token()
	if !okUser || !okToken {
		s.log.Warn(ctx, "auth response carried no usable credentials")
		return ErrNoCredentials
	}

	user, userJSON, err := mergeRole(userRaw, body)
	if err != nil {
		return ErrNoCredentials
	}
	if user.Role == "" {
		// Last resort: some deployments only put the role in the JWT.
		if role, _ := peekClaims(token); role != "" {
			user.Role = role
			userJSON, _ = json.Marshal(user)
		}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstore.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUser, userJSON); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(token))
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.state = StateAuthenticated
	_, s.expiresAt = peekClaims(token)
	s.notifyAndUnlock()

	s.log.Info(ctx, "session established", "email", user.Email, "admin", IsAdmin(user))
	return nil
}

// mergeRole decodes the raw identity object and folds a top-level sibling
// role claim into it, returning both the struct and its canonical JSON.
func mergeRole(userRaw json.RawMessage, body api.Body) (*models.User, []byte, error) {
	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return nil, nil, err
	}
	if role, ok := body.Role(); ok {
		user.Role = role
	}
	userJSON, err := json.Marshal(&user)
	if err != nil {
		return nil, nil, err
	}
	return &user, userJSON, nil
}

// Logout clears memory and the durable mirror unconditionally. Calling it
// while already anonymous is a no-op, not an error.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.state = StateAnonymous
	s.expiresAt = time.Time{}
	s.notifyAndUnlock()

	s.log.Info(ctx, "logged out")
	return nil
}

// UpdateUser replaces the identity record after a server-side profile edit.
// The token is not touched or re-validated.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, keyUser, userJSON); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.notifyAndUnlock()
	return nil
}

// Invalidate drops the in-memory session after the pipeline has already
// cleared the durable mirror on a 401. Wire it via api.Client.OnUnauthorized.
func (s *Store) Invalidate(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateAnonymous {
		s.mu.Unlock()
		return
	}
	s.user = nil
	s.token = ""
	s.state = StateAnonymous
	s.expiresAt = time.Time{}
	s.notifyAndUnlock()

	s.log.Warn(ctx, "session invalidated by server")
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.notifyAndUnlock()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		State:     s.state,
		User:      s.user,
		Token:     s.token,
		Loading:   s.loading,
		ExpiresAt: s.expiresAt,
	}
}

// notifyAndUnlock publishes the current snapshot to all subscribers and releases
// the lock. Subscribers run outside the lock so they may call back into the
// store.
func (s *Store) notifyAndUnlock() {
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
