package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/hash"
	"github.com/h7ml/denoAuthenticator/internal/pkg/idempotency"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
	"github.com/h7ml/denoAuthenticator/internal/pkg/seal"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/pkg/validator"
)

// rfcSecret is the RFC 6238 SHA-1 test key "12345678901234567890".
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

var testNow = time.Unix(59, 0).UTC()

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeDB struct {
	mu       sync.Mutex
	err      error
	users    map[int64]entity.User
	sessions map[string]entity.Session
	entries  []entity.Entry
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    map[int64]entity.User{},
		sessions: map[string]entity.Session{},
	}
}

func (f *fakeDB) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeDB) GetSession(_ context.Context, id string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &s, nil
}

func (f *fakeDB) GetEntry(_ context.Context, id, userID int64) (*entity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.entries {
		if e.ID == id && e.UserID == userID {
			e.SealedSecret = bytes.Clone(e.SealedSecret)
			return &e, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) ListEntries(_ context.Context, userID int64) ([]entity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return goerror.ErrConflict
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeDB) CreateSession(_ context.Context, sess entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions[sess.ID] = sess
	return nil
}

func (f *fakeDB) CreateEntry(_ context.Context, entry entity.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeDB) UpdateEntry(_ context.Context, patch entity.EntryPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, e := range f.entries {
		if e.ID == patch.ID && e.UserID == patch.UserID {
			f.entries[i].Name = patch.Name
			f.entries[i].Issuer = patch.Issuer
			f.entries[i].AccountName = patch.AccountName
			f.entries[i].UpdatedAt = patch.UpdatedAt
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeDB) ResetPassword(_ context.Context, userID int64, hash string, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return 0, goerror.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = at
	f.users[userID] = u

	var n int64
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeDB) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.sessions[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeDB) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for id, s := range f.sessions {
		if !s.Active(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeDB) DeleteEntry(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, e := range f.entries {
		if e.ID == id && e.UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return goerror.ErrNotFound
}

type fakeMessaging struct {
	mu         sync.Mutex
	err        error
	registered []UserRegisteredEvent
	resets     []UserPasswordResetEvent
	created    []EntryEvent
	deleted    []EntryEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, msg)
	return f.err
}

func (f *fakeMessaging) PublishUserPasswordReset(_ context.Context, msg UserPasswordResetEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, msg)
	return f.err
}

func (f *fakeMessaging) PublishEntryCreated(_ context.Context, msg EntryEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, msg)
	return f.err
}

func (f *fakeMessaging) PublishEntryDeleted(_ context.Context, msg EntryEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, msg)
	return f.err
}

type fakeBlob struct {
	err     error
	objects map[string][]byte
}

func (f *fakeBlob) PutExport(_ context.Context, key string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = body
	return nil
}

func (f *fakeBlob) ExportURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://blob.test/" + key + "?expires=" + expiry.String(), nil
}

// fakeIdempotency mirrors the redis tracker in memory.
type fakeIdempotency struct {
	mu    sync.Mutex
	done  map[string][]byte
	busy  bool
	calls int
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) ([]byte, error), _ ...idempotency.Option) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	if f.done == nil {
		f.done = map[string][]byte{}
	}
	if f.busy {
		f.mu.Unlock()
		return nil, idempotency.ErrAlreadyInProgress
	}
	if resp, ok := f.done[key]; ok {
		f.mu.Unlock()
		return resp, nil
	}
	f.mu.Unlock()

	resp, err := fn(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.done[key] = resp
	f.mu.Unlock()
	return resp, nil
}

type harness struct {
	uc    *Usecase
	db    *fakeDB
	mq    *fakeMessaging
	blob  *fakeBlob
	idemp *fakeIdempotency
	clock *testClock
	jwt   jwt.JWT
}

const testConfig = `
modules:
  authenticator:
    issuer: Authenticator
    idempotency_ttl_hours: 24
    export_url_expiry_minutes: 10
`

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	kr, err := seal.NewKeyring(1, map[uint16][]byte{1: bytes.Repeat([]byte{7}, 32)})
	if err != nil {
		t.Fatalf("keyring: %v", err)
	}
	sf, err := uid.NewSnowflakeWithNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	oid, err := uid.NewObjectIDGenerator()
	if err != nil {
		t.Fatalf("objectid: %v", err)
	}

	clk := &testClock{now: testNow}
	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: bytes.Repeat([]byte("k"), 64),
		Issuer: "test",
		TTL:    24 * time.Hour,
		Clock:  clk,
	})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	h := &harness{
		db:    newFakeDB(),
		mq:    &fakeMessaging{},
		blob:  &fakeBlob{},
		idemp: &fakeIdempotency{},
		clock: clk,
		jwt:   tokens,
	}

	h.uc = New(Dependency{
		RepoDB:        h.db,
		RepoMessaging: h.mq,
		RepoBlob:      h.blob,
		Idempotency:   h.idemp,
		Validator:     v,
		Config:        cfg,
		Hash:          hash.NewBcrypt(4, ""),
		HMAC:          hash.NewHMACSHA256("idem"),
		Sealer:        seal.NewAESGCM(kr),
		TOTP:          otp.NewTOTP(clk, otp.Params{}, 1),
		Parser:        otp.NewDispatcher(),
		Provisioner:   otp.NewProvisioner("Authenticator", 20, otp.Params{}),
		UID:           sf,
		UUID:          uid.NewUUID(),
		OID:           oid,
		Clock:         clk,
		JWT:           tokens,
		Instrument:    instrument.NewNoop(),
	})

	return h
}

func authCtx(userID int64, sessionID string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ID: sessionID},
		UserID:           userID,
		Username:         "alice",
	})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error with code %v, got %v", want, err)
	}
	if gerr.Code() != want {
		t.Fatalf("code = %v, want %v (%v)", gerr.Code(), want, err)
	}
}
