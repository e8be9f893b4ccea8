package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:    "ok",
		Service:   types.ServiceName,
		Version:   types.Version,
		Timestamp: time.Now().UTC(),
	}

	writeJSON(w, r, http.StatusOK, status)
}
