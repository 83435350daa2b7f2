// internal/app/features/errors/errorlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger centralizes "log the real error, show the user a friendly
// page" for handlers. The zap entry carries the operation and error; the
// rendered page carries only the user-facing message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and renders a friendly page.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, op string, err error, userMsg, backURL string) {
	el.log.Error(op,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderForbidden(w, r, userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders a friendly page.
func (el *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, op string, err error, userMsg, backURL string) {
	el.log.Warn(op,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderForbidden(w, r, userMsg, backURL)
}
