package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"auctionhub/internal/app"
	"auctionhub/internal/model"
	"auctionhub/internal/repository"
	"auctionhub/internal/transport/http/middleware"
)

const testSecret = "handler-secret"

type stubUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*model.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*model.User)}
}

func (s *stubUserStore) Create(user *model.User) error {
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

func (s *stubUserStore) GetByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserStore) GetByID(id uint) (*model.User, error) {
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

type stubAuctionStore struct {
	mu       sync.Mutex
	nextID   uint
	auctions []model.Auction
}

func (s *stubAuctionStore) Create(auction *model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	auction.ID = s.nextID
	auction.CreatedAt = time.Now()
	s.auctions = append(s.auctions, *auction)
	return nil
}

func (s *stubAuctionStore) ListAll() ([]model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Auction, len(s.auctions))
	copy(out, s.auctions)
	return out, nil
}

func (s *stubAuctionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.auctions)
}

// newTestRouter mirrors the production route table over in-memory
// stores. Publisher and cache are nil; both services degrade cleanly.
func newTestRouter(t *testing.T) (*gin.Engine, *stubUserStore, *stubAuctionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newStubUserStore()
	auctions := &stubAuctionStore{}

	authService := app.NewAuthService(users, nil, testSecret, time.Hour)
	auctionService := app.NewAuctionService(auctions, nil, nil)

	authHandler := NewAuthHandler(authService)
	auctionHandler := NewAuctionHandler(auctionService)
	guard := middleware.AuthJWT(testSecret)

	router := gin.New()
	router.POST("/signup", authHandler.Signup)
	router.POST("/signin", authHandler.Signin)
	router.GET("/protected", guard, authHandler.Protected)
	router.POST("/auction", guard, auctionHandler.Create)
	router.GET("/auctions", auctionHandler.List)

	return router, users, auctions
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signupAndSignin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	if rec := doJSON(t, router, http.MethodPost, "/signup", "", gin.H{
		"username": username,
		"password": password,
	}); rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(t, router, http.MethodPost, "/signin", "", gin.H{
		"username": username,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signin failed: %d %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode signin response: %v", err)
	}
	if body.Token == "" {
		t.Fatal("signin returned no token")
	}
	return body.Token
}
