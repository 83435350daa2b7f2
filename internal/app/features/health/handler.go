// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the database handle and logger.
func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and {"status":"ok","database":"connected"}.
// On DB failure: 503 and {"status":"error","database":"unavailable","error":"…"}.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if err := h.ping(ctx); err != nil {
		h.Log.Warn("health: db ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:   "error",
			Database: "unavailable",
			Error:    err.Error(),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:   "ok",
		Database: "connected",
	})
}

func (h *Handler) ping(ctx context.Context) error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
