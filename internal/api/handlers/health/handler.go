package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности БД (*sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		handlers.RespondJSON(w, http.StatusServiceUnavailable, response{Status: "degraded", Database: "unavailable"})
		return
	}
	handlers.RespondJSON(w, http.StatusOK, response{Status: "ok", Database: "ok"})
}
