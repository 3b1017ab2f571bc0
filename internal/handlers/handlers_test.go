package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/YukiKuroshima/Team-Large/internal/auth"
	dom "github.com/YukiKuroshima/Team-Large/internal/domain"
	"github.com/YukiKuroshima/Team-Large/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeUserRepo is an in-memory UserRepo keyed by email.
type fakeUserRepo struct {
	nextID    int64
	byEmail   map[string]dom.User
	order     []string
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]dom.User{}}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	if f.createErr != nil {
		return dom.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now().UTC()
	f.byEmail[u.Email] = u
	f.order = append(f.order, u.Email)
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]dom.User, error) {
	out := make([]dom.User, 0, len(f.order))
	for _, email := range f.order {
		out = append(out, f.byEmail[email])
	}
	return out, nil
}

// fakeSessions is an in-memory auth.Sessions.
type fakeSessions struct {
	seq    int
	active map[string]int64
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{active: map[string]int64{}}
}

func (f *fakeSessions) Create(_ context.Context, userID int64) (string, error) {
	f.seq++
	id := fmt.Sprintf("sess-%d", f.seq)
	f.active[id] = userID
	return id, nil
}

func (f *fakeSessions) GetUserID(_ context.Context, id string) (int64, bool) {
	userID, ok := f.active[id]
	return userID, ok
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	delete(f.active, id)
	return nil
}

// testEnv wires the real handlers against fakes, mirroring app.Setup.
type testEnv struct {
	router   *gin.Engine
	repo     *fakeUserRepo
	sessions *fakeSessions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepo()
	sessions := newFakeSessions()
	svc := service.NewUserService(repo, nil)
	authHandler := NewAuthHandler(sessions, svc)
	userHandler := NewUserHandler(svc)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	r.GET("/", authHandler.Landing)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/signup", authHandler.SignupForm)
	r.POST("/signup", authHandler.Signup)
	r.POST("/users", userHandler.Create)
	r.GET("/users", userHandler.List)

	protected := r.Group("", auth.RequireSession(sessions))
	protected.GET("/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.Profile)

	return &testEnv{router: r, repo: repo, sessions: sessions}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func formRequest(path string, vals url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}
