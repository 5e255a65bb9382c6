package http

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/MKhiriev/miniforum/models"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const testCookieName = "miniforum.sid"

var errUnexpectedCall = errors.New("unexpected call")

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn   func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	authenticateFn   func(ctx context.Context, req models.LoginRequest) (models.User, error)
	findUserByNameFn func(ctx context.Context, username string) (models.User, error)
	updatePasswordFn func(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
	resetPasswordFn  func(ctx context.Context, req models.ResetPasswordRequest) error
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if m.registerUserFn == nil {
		return models.User{}, errUnexpectedCall
	}
	return m.registerUserFn(ctx, req)
}

func (m *mockAuthService) Authenticate(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if m.authenticateFn == nil {
		return models.User{}, errUnexpectedCall
	}
	return m.authenticateFn(ctx, req)
}

func (m *mockAuthService) FindUserByName(ctx context.Context, username string) (models.User, error) {
	if m.findUserByNameFn == nil {
		return models.User{}, errUnexpectedCall
	}
	return m.findUserByNameFn(ctx, username)
}

func (m *mockAuthService) FindUserByID(context.Context, int64) (models.User, error) {
	return models.User{}, errUnexpectedCall
}

func (m *mockAuthService) ComparePassword(context.Context, int64, string) (bool, error) {
	return false, errUnexpectedCall
}

func (m *mockAuthService) ChangePassword(context.Context, int64, string) error {
	return errUnexpectedCall
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	if m.updatePasswordFn == nil {
		return errUnexpectedCall
	}
	return m.updatePasswordFn(ctx, userID, req)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if m.resetPasswordFn == nil {
		return errUnexpectedCall
	}
	return m.resetPasswordFn(ctx, req)
}

// ─────────────────────────────────────────────
// Fake SessionService
// ─────────────────────────────────────────────

// fakeSessionService maps signed token strings to users. Tokens it issues
// look like "anon-<n>" and "user-<id>-<n>".
type fakeSessionService struct {
	mu      sync.Mutex
	counter int
	tokens  map[string]*models.User

	// resolveErr, when set, is returned by Resolve for every token.
	resolveErr error
	startErr   error
	loginErr   error

	loggedOut []string
}

func newFakeSessionService() *fakeSessionService {
	return &fakeSessionService{tokens: make(map[string]*models.User)}
}

// bind registers token as a live session of user.
func (f *fakeSessionService) bind(token string, user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &user
}

func (f *fakeSessionService) Start(context.Context) (models.Session, models.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.startErr != nil {
		return models.Session{}, models.Token{}, f.startErr
	}

	f.counter++
	token := fmt.Sprintf("anon-%d", f.counter)
	f.tokens[token] = nil

	return fakeSession(0), models.Token{SignedString: token, SessionID: token}, nil
}

func (f *fakeSessionService) Login(_ context.Context, currentToken string, user models.User) (models.Session, models.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loginErr != nil {
		return models.Session{}, models.Token{}, f.loginErr
	}

	delete(f.tokens, currentToken)
	f.counter++
	token := fmt.Sprintf("user-%d-%d", user.UserID, f.counter)
	f.tokens[token] = &user

	return fakeSession(user.UserID), models.Token{SignedString: token, SessionID: token}, nil
}

func (f *fakeSessionService) Resolve(_ context.Context, token string) (models.Session, *models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolveErr != nil {
		return models.Session{}, nil, f.resolveErr
	}

	user, ok := f.tokens[token]
	if !ok {
		return models.Session{}, nil, service.ErrUnauthenticated
	}
	if user == nil {
		return fakeSession(0), nil, nil
	}
	return fakeSession(user.UserID), user, nil
}

func (f *fakeSessionService) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.tokens, token)
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeSessionService) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeSessionService) has(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[token]
	return ok
}

func fakeSession(userID int64) models.Session {
	now := time.Now().UTC()
	return models.Session{UserID: userID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
}

// ─────────────────────────────────────────────
// Mock PostService
// ─────────────────────────────────────────────

type mockPostService struct {
	makePostFn   func(ctx context.Context, user models.User, req models.MakePostRequest) (models.Post, error)
	editPostFn   func(ctx context.Context, user models.User, req models.EditPostRequest) (models.Post, error)
	deletePostFn func(ctx context.Context, user models.User, req models.DeletePostRequest) error
	getPostsFn   func(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
}

func (m *mockPostService) MakePost(ctx context.Context, user models.User, req models.MakePostRequest) (models.Post, error) {
	if m.makePostFn == nil {
		return models.Post{}, errUnexpectedCall
	}
	return m.makePostFn(ctx, user, req)
}

func (m *mockPostService) EditPost(ctx context.Context, user models.User, req models.EditPostRequest) (models.Post, error) {
	if m.editPostFn == nil {
		return models.Post{}, errUnexpectedCall
	}
	return m.editPostFn(ctx, user, req)
}

func (m *mockPostService) DeletePost(ctx context.Context, user models.User, req models.DeletePostRequest) error {
	if m.deletePostFn == nil {
		return errUnexpectedCall
	}
	return m.deletePostFn(ctx, user, req)
}

func (m *mockPostService) GetPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	if m.getPostsFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getPostsFn(ctx, filter)
}

// ─────────────────────────────────────────────
// Mock AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	alice = models.User{UserID: 1, Username: "alice", Email: "alice@example.com"}
	bob   = models.User{UserID: 2, Username: "bob", Email: "bob@example.com"}
)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			SessionCookieName: testCookieName,
		},
		Server: config.Server{
			RequestTimeout: 5 * time.Second,
		},
	}
}

// testServices fills every service with a mock so that unrelated routes do
// not panic.
type testServices struct {
	auth     *mockAuthService
	sessions *fakeSessionService
	posts    *mockPostService
}

func newTestServices() *testServices {
	return &testServices{
		auth:     &mockAuthService{},
		sessions: newFakeSessionService(),
		posts:    &mockPostService{},
	}
}

func (s *testServices) services() *service.Services {
	return &service.Services{
		AuthService:    s.auth,
		SessionService: s.sessions,
		PostService:    s.posts,
		AppInfoService: &mockAppInfoService{version: "test-version"},
	}
}

// newTestRouter builds the full router over svcs. The returned metrics are
// registered in a private registry.
func newTestRouter(t *testing.T, svcs *testServices) (*chi.Mux, *metrics.Metrics) {
	t.Helper()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	h := NewHandler(svcs.services(), m, testConfig(), logger.Nop())

	return h.Init(), m
}
