package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymtrack/internal/client/models"
	"gymtrack/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

var dbSeq atomic.Int64

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	// A unique name per call keeps shared-cache in-memory databases distinct
	// when a single test opens more than one.
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), dbSeq.Add(1))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func getKey(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM session WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

func setKey(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO session(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	return n
}

// fakeAuth implements AuthAPI with canned responses.
type fakeAuth struct {
	loginRaw    json.RawMessage
	loginErr    error
	registerRaw json.RawMessage
	registerErr error

	lastCreds models.Credentials
	lastReg   models.Registration
}

func (f *fakeAuth) Login(ctx context.Context, creds models.Credentials) (json.RawMessage, error) {
	f.lastCreds = creds
	return f.loginRaw, f.loginErr
}

func (f *fakeAuth) Register(ctx context.Context, reg models.Registration) (json.RawMessage, error) {
	f.lastReg = reg
	return f.registerRaw, f.registerErr
}

func newTestStore(t *testing.T, auth *fakeAuth) (*Store, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	return NewStore(auth, db, testLogger()), db
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

// ---- TESTS ----

func TestRestore_EmptyStorage(t *testing.T) {
	store, _ := newTestStore(t, &fakeAuth{})
	require.Equal(t, StateRestoring, store.Snapshot().State)

	require.NoError(t, store.Restore(context.Background()))

	snap := store.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.IsAuthenticated())
}

func TestLogin_DirectShapeWithSiblingRole(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"role":"ADMIN","access_token":"tok123"}`),
	}
	store, db := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	raw, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Equal(t, "a@b.com", auth.lastCreds.Email)

	snap := store.Snapshot()
	require.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, int64(1), snap.User.ID)
	assert.Equal(t, "a@b.com", snap.User.Email)
	assert.Equal(t, "ADMIN", snap.User.Role)
	assert.Equal(t, "tok123", snap.Token)
	assert.True(t, IsAdmin(snap.User))

	// Both keys mirrored durably, with the role merged into the user record.
	assert.Equal(t, "tok123", string(getKey(t, db, "token")))
	var stored models.User
	require.NoError(t, json.Unmarshal(getKey(t, db, "user"), &stored))
	assert.Equal(t, "ADMIN", stored.Role)
}

func TestLogin_NestedDataShape(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"data":{"user":{"id":2,"email":"c@d.com"},"accessToken":"tokB"}}`),
	}
	store, _ := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Login(context.Background(), models.Credentials{Email: "c@d.com", Password: "pw"})
	require.NoError(t, err)

	snap := store.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, int64(2), snap.User.ID)
	assert.Equal(t, "tokB", snap.Token)
}

func TestLogin_RoleOutsideUserShape(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":3,"email":"e@f.com"},"role":"USER","token":"tokC"}`),
	}
	store, _ := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Login(context.Background(), models.Credentials{Email: "e@f.com", Password: "pw"})
	require.NoError(t, err)

	snap := store.Snapshot()
	assert.Equal(t, "USER", snap.User.Role)
	assert.Equal(t, "tokC", snap.Token)
	assert.False(t, IsAdmin(snap.User))
}

func TestLogin_RoleFromJWTClaim(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":4,"email":"g@h.com"},"access_token":"` + tok + `"}`),
	}
	store, _ := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Login(context.Background(), models.Credentials{Email: "g@h.com", Password: "pw"})
	require.NoError(t, err)

	snap := store.Snapshot()
	assert.Equal(t, "ADMIN", snap.User.Role)
	assert.False(t, snap.ExpiresAt.IsZero())
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"access_token":"tok"}`),
	}
	store, _ := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	auth.loginRaw = nil
	auth.loginErr = errors.New("invalid credentials")

	_, err = store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "bad"})
	require.Error(t, err)

	snap := store.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, "tok", snap.Token)
}

func TestLogin_NoRecognizableCredentials(t *testing.T) {
	auth := &fakeAuth{loginRaw: json.RawMessage(`{"message":"welcome"}`)}
	store, db := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.ErrorIs(t, err, ErrNoCredentials)

	assert.Equal(t, StateAnonymous, store.Snapshot().State)
	assert.Zero(t, countRows(t, db))
}

func TestRegister_WithoutTokenStaysAnonymous(t *testing.T) {
	auth := &fakeAuth{registerRaw: json.RawMessage(`{"user":{"id":9,"email":"new@b.com"}}`)}
	store, _ := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Register(context.Background(), models.Registration{Email: "new@b.com", Password: "pw"})
	require.ErrorIs(t, err, ErrNoCredentials)
	assert.False(t, store.IsAuthenticated())
}

func TestRegister_WithCredentialsAuthenticates(t *testing.T) {
	auth := &fakeAuth{
		registerRaw: json.RawMessage(`{"user":{"id":9,"email":"new@b.com"},"access_token":"tokR"}`),
	}
	store, _ := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Register(context.Background(), models.Registration{Email: "new@b.com", Password: "pw", FullName: "New User"})
	require.NoError(t, err)
	assert.Equal(t, "New User", auth.lastReg.FullName)
	assert.True(t, store.IsAuthenticated())
}

func TestRestore_RoundTrip(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"role":"USER","access_token":"tok"}`),
	}
	store, db := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))
	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	// Simulate a restart: a fresh store over the same database.
	restored := NewStore(auth, db, testLogger())
	require.NoError(t, restored.Restore(context.Background()))

	snap := restored.Snapshot()
	require.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, store.Snapshot().User, snap.User)
	assert.Equal(t, "tok", snap.Token)
}

func TestRestore_CorruptRecordDiscarded(t *testing.T) {
	store, db := newTestStore(t, &fakeAuth{})
	setKey(t, db, "user", []byte(`{not json`))
	setKey(t, db, "token", []byte("tok"))

	require.NoError(t, store.Restore(context.Background()))

	snap := store.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.IsAuthenticated())
	assert.Nil(t, getKey(t, db, "user"))
	assert.Nil(t, getKey(t, db, "token"))
}

func TestRestore_PartialStateNotAuthenticated(t *testing.T) {
	store, db := newTestStore(t, &fakeAuth{})
	setKey(t, db, "token", []byte("tok-without-user"))

	require.NoError(t, store.Restore(context.Background()))
	assert.False(t, store.IsAuthenticated())

	store2, db2 := newTestStore(t, &fakeAuth{})
	setKey(t, db2, "user", []byte(`{"id":1,"email":"a@b.com"}`))

	require.NoError(t, store2.Restore(context.Background()))
	assert.False(t, store2.IsAuthenticated())
}

func TestLogout_Idempotent(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"access_token":"tok"}`),
	}
	store, db := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))
	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, store.Logout(context.Background()))
	first := store.Snapshot()
	assert.Equal(t, StateAnonymous, first.State)
	assert.Zero(t, countRows(t, db))

	// Logging out while anonymous is a no-op, not an error.
	require.NoError(t, store.Logout(context.Background()))
	assert.Equal(t, first.State, store.Snapshot().State)
	assert.Zero(t, countRows(t, db))
}

func TestUpdateUser_KeepsToken(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"access_token":"tok"}`),
	}
	store, db := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))
	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	updated := &models.User{ID: 1, Email: "a@b.com", FullName: "Renamed", Role: "USER"}
	require.NoError(t, store.UpdateUser(context.Background(), updated))

	snap := store.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "Renamed", snap.User.FullName)
	assert.Equal(t, "tok", snap.Token)
	assert.Equal(t, "tok", string(getKey(t, db, "token")))

	var stored models.User
	require.NoError(t, json.Unmarshal(getKey(t, db, "user"), &stored))
	assert.Equal(t, "Renamed", stored.FullName)
}

func TestInvalidate_GlobalUnauthorizedEffect(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"access_token":"tok"}`),
	}
	store, db := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))
	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	// What the pipeline does on a 401: clear the mirror, then fire the hook.
	mirror := NewMirror(db)
	require.NoError(t, mirror.ClearSession(context.Background()))
	store.Invalidate(context.Background())

	snap := store.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.IsAuthenticated())
	assert.Zero(t, countRows(t, db))

	// Invalidate while already anonymous is a no-op.
	store.Invalidate(context.Background())
	assert.Equal(t, StateAnonymous, store.Snapshot().State)
}

func TestMirror_TokenReadsDurableState(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"access_token":"tok"}`),
	}
	store, db := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	mirror := NewMirror(db)
	tok, err := mirror.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)

	_, err = store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	tok, err = mirror.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestSubscribe_NotifiesAndUnsubscribes(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"access_token":"tok"}`),
	}
	store, _ := newTestStore(t, auth)

	var snaps []Snapshot
	unsubscribe := store.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	require.NoError(t, store.Restore(context.Background()))
	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	require.NotEmpty(t, snaps)
	// Every published snapshot satisfies the authentication invariant.
	for _, s := range snaps {
		assert.Equal(t, s.User != nil && s.Token != "", s.IsAuthenticated())
	}
	last := snaps[len(snaps)-1]
	assert.True(t, last.IsAuthenticated())

	n := len(snaps)
	unsubscribe()
	require.NoError(t, store.Logout(context.Background()))
	assert.Len(t, snaps, n)
}

func TestLogin_LoadingVisibleDuringCall(t *testing.T) {
	auth := &fakeAuth{
		loginRaw: json.RawMessage(`{"user":{"id":1,"email":"a@b.com"},"access_token":"tok"}`),
	}
	store, _ := newTestStore(t, auth)
	require.NoError(t, store.Restore(context.Background()))

	var sawLoading bool
	unsubscribe := store.Subscribe(func(s Snapshot) {
		if s.Loading {
			sawLoading = true
		}
	})
	defer unsubscribe()

	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	assert.True(t, sawLoading)
	assert.False(t, store.Snapshot().Loading)
}

func TestPeekClaims(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	tok := signedToken(t, jwt.MapClaims{"role": "USER", "exp": exp.Unix()})

	role, gotExp := peekClaims(tok)
	assert.Equal(t, "USER", role)
	assert.True(t, gotExp.Equal(exp))

	role, gotExp = peekClaims("opaque-token")
	assert.Empty(t, role)
	assert.True(t, gotExp.IsZero())
}
