package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/YukiKuroshima/Team-Large/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signupValues() url.Values {
	return url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"email":      {"ada@example.com"},
		"password":   {"secret42"},
	}
}

func TestLandingAndForms(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/", "/login", "/signup"} {
		w := e.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
	}
}

func TestSignupCreatesUserAndAuthenticates(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(formRequest("/signup", signupValues()))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	userID, ok := e.sessions.GetUserID(nil, cookie.Value)
	require.True(t, ok)

	u, ok := e.repo.byEmail["ada@example.com"]
	require.True(t, ok)
	assert.Equal(t, u.ID, userID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret42")))
}

func TestSignupDuplicateEmailKeepsSingleRow(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(formRequest("/signup", signupValues()))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = e.do(formRequest("/signup", signupValues()))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This email is taken")
	assert.Len(t, e.repo.byEmail, 1)
}

func TestSignupValidationErrors(t *testing.T) {
	e := newTestEnv(t)

	vals := signupValues()
	vals.Set("email", "not-an-email")
	vals.Del("first_name")
	w := e.do(formRequest("/signup", vals))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, "Invalid email address.")
	assert.Len(t, e.repo.byEmail, 0)
}

func TestLoginSuccess(t *testing.T) {
	e := newTestEnv(t)
	e.do(formRequest("/signup", signupValues()))

	w := e.do(formRequest("/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"secret42"},
	}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(w))
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	e.do(formRequest("/signup", signupValues()))
	before := len(e.sessions.active)

	w := e.do(formRequest("/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"wrong"},
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect Password")
	assert.Nil(t, sessionCookie(w))
	assert.Len(t, e.sessions.active, before)
}

func TestLoginUnknownEmail(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(formRequest("/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"whatever"},
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect Email")
	assert.Nil(t, sessionCookie(w))
	assert.Len(t, e.repo.byEmail, 0) // lookup never creates a user
}

func TestLogout(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(formRequest("/signup", signupValues()))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie.Value})
	w = e.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	_, ok := e.sessions.GetUserID(nil, cookie.Value)
	assert.False(t, ok)

	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestLogoutWithoutSession(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Len(t, e.sessions.active, 0)
}

func TestProfile(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(formRequest("/signup", signupValues()))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie.Value})
	w = e.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada")
}

func TestProfileWithoutSessionRedirects(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
