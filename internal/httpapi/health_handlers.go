package httpapi

import (
	"net/http"
	"time"

	"leadgen-engine/internal/scrape/types"
)

type HealthHandler struct {
	SourceStatus func() map[string]types.SourceStatus
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	}
	if h.SourceStatus != nil {
		resp["sources"] = h.SourceStatus()
	}
	WriteJSON(w, http.StatusOK, resp)
}
