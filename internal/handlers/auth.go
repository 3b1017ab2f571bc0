package handlers

import (
	"net/http"

	"github.com/YukiKuroshima/Team-Large/internal/auth"
	"github.com/YukiKuroshima/Team-Large/internal/forms"
	"github.com/YukiKuroshima/Team-Large/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 24 * 60 * 60 // seconds, matches the store TTL default

// AuthHandler handles the browser-facing pages: landing, signup, login,
// logout and profile.
type AuthHandler struct {
	sessions auth.Sessions
	users    *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions auth.Sessions, users *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users}
}

// Landing renders the static landing page.
func (h *AuthHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.html", nil)
}

// LoginForm renders the empty login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Form": forms.NewLoginForm()})
}

// Login validates the submitted credentials. Unknown email and wrong password
// stay distinct field errors; on success a session is established and the
// browser is sent to the profile page.
func (h *AuthHandler) Login(c *gin.Context) {
	form := forms.NewLoginForm()
	if err := c.ShouldBind(&form); err != nil {
		form.Errors = forms.FieldErrors(err)
		c.HTML(http.StatusOK, "login.html", gin.H{"Form": form})
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		switch err {
		case service.ErrUnknownEmail:
			form.Errors.Add("email", "Incorrect Email")
		case service.ErrWrongPassword:
			form.Errors.Add("password", "Incorrect Password")
		default:
			form.Errors.Add("form", "Something went wrong. Please try again.")
		}
		c.HTML(http.StatusOK, "login.html", gin.H{"Form": form})
		return
	}
	if !h.startSession(c, user.ID) {
		form.Errors.Add("form", "Something went wrong. Please try again.")
		c.HTML(http.StatusOK, "login.html", gin.H{"Form": form})
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// SignupForm renders the empty signup form.
func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"Form": forms.NewSignupForm()})
}

// Signup creates the account, logs it in and redirects to the profile page.
// A duplicate email rolls back to the form with a field error; no partial
// write survives.
func (h *AuthHandler) Signup(c *gin.Context) {
	form := forms.NewSignupForm()
	if err := c.ShouldBind(&form); err != nil {
		form.Errors = forms.FieldErrors(err)
		c.HTML(http.StatusOK, "signup.html", gin.H{"Form": form})
		return
	}
	user, err := h.users.Signup(c.Request.Context(), form.FirstName, form.LastName, form.Email, form.Password)
	if err != nil {
		if err == service.ErrEmailTaken {
			form.Errors.Add("email", "This email is taken")
		} else {
			form.Errors.Add("form", "Something went wrong. Please try again.")
		}
		c.HTML(http.StatusOK, "signup.html", gin.H{"Form": form})
		return
	}
	if !h.startSession(c, user.ID) {
		form.Errors.Add("form", "Something went wrong. Please try again.")
		c.HTML(http.StatusOK, "signup.html", gin.H{"Form": form})
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// Logout terminates the session and returns the browser to the login page.
// Unauthenticated requests never get here; RequireSession redirects first.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// Profile renders the logged-in user's profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		// Session points at a row that no longer exists; drop it.
		c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{"User": user})
}

func (h *AuthHandler) startSession(c *gin.Context, userID int64) bool {
	sessionID, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	c.SetCookie(auth.SessionCookieName, sessionID, sessionMaxAge, "/", "", false, true)
	return true
}
