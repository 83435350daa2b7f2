// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds app-specific configuration loaded via WAFFLE's config
// system. Extend as the app grows.
type AppConfig struct {
	PostgresDSN string

	SessionKey    string
	SessionName   string
	SessionDomain string
}
