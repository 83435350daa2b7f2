// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
	userstore "github.com/dalemusser/eventhub/internal/app/store/users"
	"github.com/dalemusser/eventhub/internal/app/system/auth"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/eventhub/internal/app/system/formutil"
	"github.com/dalemusser/eventhub/internal/app/system/normalize"
	"github.com/dalemusser/eventhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Users:      users,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
	}
}

type loginFormData struct {
	formutil.Base
	Username  string
	ReturnURL string
}

// ServeLogin handles GET /login. A signed-in user is sent home.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := auth.CurrentUser(r); signedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := loginFormData{ReturnURL: safeReturn(query.Get(r, "return"))}
	formutil.SetBase(&data.Base, w, r, "Log in", "/")
	templates.Render(w, r, "login", data)
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := auth.CurrentUser(r); signedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: parse form", err,
			"We couldn't read the form. Please try again.", "/login")
		return
	}

	username := normalize.Username(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	returnURL := safeReturn(r.PostFormValue("return"))

	renderError := func(msg string) {
		data := loginFormData{Username: username, ReturnURL: returnURL}
		formutil.SetBase(&data.Base, w, r, "Log in", "/")
		data.Error = msg
		templates.Render(w, r, "login", data)
	}

	if username == "" || password == "" {
		renderError("Username and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, userstore.ErrInvalidCredentials) {
			renderError("Invalid username or password.")
			return
		}
		h.ErrLog.LogServerError(w, r, "login: authenticate", err,
			"A server error occurred. Please try again.", "/login")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session", err,
			"A server error occurred. Please try again.", "/login")
		return
	}

	flash.Success(w, r, "Welcome back, "+user.Username+".")

	dest := "/dashboard"
	if returnURL != "" {
		dest = returnURL
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// safeReturn only allows same-site relative paths as redirect targets.
func safeReturn(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}
