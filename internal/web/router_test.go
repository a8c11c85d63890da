package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yourusername/secret-keeper/internal/auth"
	"github.com/yourusername/secret-keeper/internal/config"
	"github.com/yourusername/secret-keeper/internal/session"
	"github.com/yourusername/secret-keeper/internal/user"
)

type stubUserStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*user.User)}
}

func (s *stubUserStore) Create(ctx context.Context, profile user.Profile, password string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[profile.Username]; ok {
		return nil, user.ErrDuplicateUsername
	}
	hash, err := user.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		ID:           bson.NewObjectID(),
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		PasswordHash: hash,
	}
	s.users[profile.Username] = u
	return u, nil
}

func (s *stubUserStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *stubUserStore) VerifyCredentials(ctx context.Context, username, password string) (*user.User, error) {
	s.mu.Lock()
	u, ok := s.users[username]
	s.mu.Unlock()

	if !ok {
		return nil, user.ErrNotFound
	}
	if err := user.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}
	return u, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubUserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:               "3000",
		GinMode:            gin.TestMode,
		SessionSecret:      "test-secret",
		MongoURI:           "mongodb://localhost:27017",
		DatabaseName:       "secrets",
		CORSAllowedOrigins: "http://localhost:3000",
	}
	sessionStore, err := session.NewStore(cfg)
	if err != nil {
		t.Fatalf("session.NewStore returned error: %v", err)
	}

	store := newStubUserStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := auth.NewManager(store, store, logger)
	return NewRouter(cfg, manager, sessionStore), store
}

func do(router *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPublicPages(t *testing.T) {
	router, _ := newTestRouter(t)

	home := do(router, http.MethodGet, "/", nil, nil)
	if home.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", home.Code)
	}
	if !strings.Contains(home.Body.String(), `action="/home"`) {
		t.Fatal("home page is missing the login form")
	}

	register := do(router, http.MethodGet, "/register", nil, nil)
	if register.Code != http.StatusOK {
		t.Fatalf("GET /register status = %d, want 200", register.Code)
	}
	if !strings.Contains(register.Body.String(), `action="/register"`) {
		t.Fatal("register page is missing the registration form")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}

func TestStaticAssets(t *testing.T) {
	router, _ := newTestRouter(t)

	css := do(router, http.MethodGet, "/static/style.css", nil, nil)
	if css.Code != http.StatusOK {
		t.Fatalf("GET /static/style.css status = %d, want 200", css.Code)
	}

	favicon := do(router, http.MethodGet, "/favicon.ico", nil, nil)
	if favicon.Code != http.StatusOK {
		t.Fatalf("GET /favicon.ico status = %d, want 200", favicon.Code)
	}
	if favicon.Body.Len() == 0 {
		t.Fatal("favicon response is empty")
	}
}

// TestRegisterLoginLogoutScenario は登録→閲覧→ログアウト→再閲覧の一連の流れを検証します。
func TestRegisterLoginLogoutScenario(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodPost, "/register", url.Values{
		"username": {"a@b.com"},
		"fName":    {"A"},
		"lName":    {"B"},
		"password": {"pw1"},
	}, nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/secrets" {
		t.Fatalf("register: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("register did not set a session cookie")
	}

	secrets := do(router, http.MethodGet, "/secrets", nil, cookies)
	if secrets.Code != http.StatusOK {
		t.Fatalf("GET /secrets status = %d, want 200", secrets.Code)
	}
	body := secrets.Body.String()
	if !strings.Contains(body, "A") || !strings.Contains(body, "B") {
		t.Fatalf("secrets page does not show the user's name: %s", body)
	}

	logout := do(router, http.MethodGet, "/logout", nil, cookies)
	if logout.Code != http.StatusFound || logout.Header().Get("Location") != "/" {
		t.Fatalf("logout: %d %q", logout.Code, logout.Header().Get("Location"))
	}

	// ログアウト後のクッキーでは閲覧できない
	after := do(router, http.MethodGet, "/secrets", nil, logout.Result().Cookies())
	if after.Code != http.StatusFound || after.Header().Get("Location") != "/" {
		t.Fatalf("post-logout /secrets: %d %q", after.Code, after.Header().Get("Location"))
	}
}

// TestSecretsShowsOwnNameOnly は他のユーザーの名前が混ざらないことを検証します。
func TestSecretsShowsOwnNameOnly(t *testing.T) {
	router, _ := newTestRouter(t)

	first := do(router, http.MethodPost, "/register", url.Values{
		"username": {"a@b.com"},
		"fName":    {"Alice"},
		"lName":    {"Anderson"},
		"password": {"pw1"},
	}, nil)
	second := do(router, http.MethodPost, "/register", url.Values{
		"username": {"c@d.com"},
		"fName":    {"Carol"},
		"lName":    {"Chang"},
		"password": {"pw2"},
	}, nil)

	secrets := do(router, http.MethodGet, "/secrets", nil, first.Result().Cookies())
	if secrets.Code != http.StatusOK {
		t.Fatalf("GET /secrets status = %d, want 200", secrets.Code)
	}
	body := secrets.Body.String()
	if !strings.Contains(body, "Alice") || strings.Contains(body, "Carol") {
		t.Fatalf("secrets page shows the wrong user: %s", body)
	}

	secrets = do(router, http.MethodGet, "/secrets", nil, second.Result().Cookies())
	body = secrets.Body.String()
	if !strings.Contains(body, "Carol") || strings.Contains(body, "Alice") {
		t.Fatalf("secrets page shows the wrong user: %s", body)
	}
}
