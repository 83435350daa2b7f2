// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EventHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: postgres_dsn, session_name, etc.
//   - Environment variables: EVENTHUB_POSTGRES_DSN, EVENTHUB_SESSION_NAME, etc.
//   - Command-line flags: --postgres_dsn, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "postgres_dsn", Default: "host=localhost user=eventhub password=eventhub dbname=eventhub port=5432 sslmode=disable", Desc: "PostgreSQL connection DSN"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "eventhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific to
// this app. Merging precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EVENTHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		PostgresDSN:   appValues.String("postgres_dsn"),
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.PostgresDSN == "" {
		return fmt.Errorf("postgres_dsn must not be empty")
	}

	if coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters in production")
	}

	return nil
}
