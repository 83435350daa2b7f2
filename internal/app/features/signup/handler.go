// internal/app/features/signup/handler.go
package signup

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
	userstore "github.com/dalemusser/eventhub/internal/app/store/users"
	"github.com/dalemusser/eventhub/internal/app/system/auth"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/eventhub/internal/app/system/formutil"
	"github.com/dalemusser/eventhub/internal/app/system/inputval"
	"github.com/dalemusser/eventhub/internal/app/system/normalize"
	"github.com/dalemusser/eventhub/internal/app/system/timeouts"
	"github.com/dalemusser/eventhub/internal/domain/models"
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

type signupFormData struct {
	formutil.Base
	Username string
}

type signupInput struct {
	Username string `validate:"required,max=150" label:"Username"`
	Password string `validate:"required,min=8" label:"Password"`
}

// ServeSignup handles GET /register. Signed-in users are sent home.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := auth.CurrentUser(r); signedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := signupFormData{}
	formutil.SetBase(&data.Base, w, r, "Sign up", "/")
	templates.Render(w, r, "signup", data)
}

// HandleSignupPost handles POST /register. New accounts are always plain
// students; organizer and admin accounts are provisioned out of band.
func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := auth.CurrentUser(r); signedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "signup: parse form", err,
			"We couldn't read the form. Please try again.", "/register")
		return
	}

	username := normalize.Username(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	renderError := func(msg string) {
		data := signupFormData{Username: username}
		formutil.SetBase(&data.Base, w, r, "Sign up", "/")
		data.Error = msg
		templates.Render(w, r, "signup", data)
	}

	input := signupInput{Username: username, Password: password}
	if result := inputval.Validate(input); result.HasErrors() {
		renderError(result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, username, password, models.RoleStudent)
	if err != nil {
		if errors.Is(err, userstore.ErrUsernameTaken) {
			renderError("That username is already taken.")
			return
		}
		h.ErrLog.LogServerError(w, r, "signup: create user", err,
			"A server error occurred. Please try again.", "/register")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID); err != nil {
		// Account exists; let them log in manually rather than show an error.
		h.Log.Error("signup: auto sign-in", zap.Error(err), zap.Uint("user_id", user.ID))
		flash.Info(w, r, "Account created. Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	flash.Success(w, r, "Welcome, "+user.Username+"! Your account is ready.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
