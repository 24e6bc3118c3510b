package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auctionhub/internal/model"
	"auctionhub/internal/pkg/jwtutil"
	"auctionhub/internal/repository"
)

// memUserStore enforces the username unique index the way the real
// store does, so the registration race resolves to a single winner.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return repository.ErrDuplicateKey
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) countByUsername(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, user := range s.users {
		if user.Username == username {
			count++
		}
	}
	return count
}

type memPublisher struct {
	mu     sync.Mutex
	events []model.AuditEvent
}

func (p *memPublisher) Publish(_ context.Context, event model.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

const testSecret = "test-secret"

func newTestAuthService(store *memUserStore) *AuthService {
	return NewAuthService(store, &memPublisher{}, testSecret, time.Hour)
}

func TestRegisterThenLogin_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newMemUserStore()
	svc := newTestAuthService(store)

	user, err := svc.Register(RegisterInput{Username: "alice", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	result, err := svc.Login(LoginInput{Username: "alice", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	claims, err := jwtutil.ParseToken(testSecret, result.Token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject mismatch: got %d want %d", claims.UserID, user.ID)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserStore())

	cases := []RegisterInput{
		{Username: "", Password: "pw"},
		{Username: "bob", Password: ""},
		{Username: "", Password: ""},
	}
	for _, input := range cases {
		if _, err := svc.Register(input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Register(%+v): expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	store := newMemUserStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(RegisterInput{Username: "carol", Password: "pw1"}); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "carol", Password: "pw2"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if got := store.countByUsername("carol"); got != 1 {
		t.Fatalf("expected exactly one record, got %d", got)
	}
}

func TestLogin_NonEnumerableFailures(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserStore())

	if _, err := svc.Register(RegisterInput{Username: "dave", Password: "correct"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, errWrongPassword := svc.Login(LoginInput{Username: "dave", Password: "wrong"})
	_, errUnknownUser := svc.Login(LoginInput{Username: "nobody", Password: "whatever"})

	if !errors.Is(errWrongPassword, ErrInvalidCredential) {
		t.Fatalf("wrong password: expected ErrInvalidCredential, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredential) {
		t.Fatalf("unknown user: expected ErrInvalidCredential, got %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	t.Parallel()

	store := newMemUserStore()
	svc := newTestAuthService(store)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(RegisterInput{Username: "racer", Password: "pw"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrUsernameExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", successes)
	}
	if got := store.countByUsername("racer"); got != 1 {
		t.Fatalf("expected one stored record, got %d", got)
	}
}

func TestGetUserByID(t *testing.T) {
	t.Parallel()

	store := newMemUserStore()
	svc := newTestAuthService(store)

	registered, err := svc.Register(RegisterInput{Username: "gina", Password: "pw"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	found, err := svc.GetUserByID(registered.ID)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if found == nil || found.Username != "gina" {
		t.Fatalf("unexpected lookup result: %+v", found)
	}

	missing, err := svc.GetUserByID(registered.ID + 1)
	if err != nil {
		t.Fatalf("GetUserByID error for absent id: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected absence, got %+v", missing)
	}

	if _, err := svc.GetUserByID(0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero id: expected ErrInvalidInput, got %v", err)
	}
}

func TestHashing_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	store := newMemUserStore()
	svc := newTestAuthService(store)

	u1, err := svc.Register(RegisterInput{Username: "erin", Password: "same-password"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	u2, err := svc.Register(RegisterInput{Username: "frank", Password: "same-password"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u1.PasswordHash == u2.PasswordHash {
		t.Fatal("same password produced identical hashes; salt is not fresh")
	}
}
