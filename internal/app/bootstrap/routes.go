// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/eventhub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/eventhub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/eventhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/eventhub/internal/app/features/health"
	homefeature "github.com/dalemusser/eventhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/eventhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/eventhub/internal/app/features/logout"
	myeventsfeature "github.com/dalemusser/eventhub/internal/app/features/myevents"
	signupfeature "github.com/dalemusser/eventhub/internal/app/features/signup"
	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	regstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	userstore "github.com/dalemusser/eventhub/internal/app/store/users"
	"github.com/dalemusser/eventhub/internal/app/system/auth"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, schema setup, and
// any Startup hooks have completed. It creates the session manager, boots
// the template engine, builds the stores, and mounts each feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so role
	// changes and deleted accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.DB))

	// Flash messages share the cookie store (and so the signing key and
	// cookie options) with the auth session.
	flash.Init(sessionMgr.Store())

	// Boot the template engine once at startup. Dev mode enables template
	// reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Stores and the shared error logger.
	users := userstore.New(deps.DB)
	events := eventstore.New(deps.DB)
	regs := regstore.New(deps.DB)
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.DB, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public event listing.
	homeHandler := homefeature.NewHandler(events, regs, errLog, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication.
	loginHandler := loginfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	signupHandler := signupfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/register", signupfeature.Routes(signupHandler))

	// Error pages.
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Events: public detail plus gated create/edit/delete/registration.
	eventsHandler := eventsfeature.NewHandler(events, regs, errLog, logger)
	r.Mount("/event", eventsfeature.Routes(eventsHandler, sessionMgr))

	// Role-based dashboard and the student's registration list.
	dashboardHandler := dashboardfeature.NewHandler(events, regs, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	myEventsHandler := myeventsfeature.NewHandler(regs, errLog, logger)
	r.Mount("/my-events", myeventsfeature.Routes(myEventsHandler, sessionMgr))

	return r, nil
}
