package server

import (
	"encoding/json"
	"net/http"

	"github.com/payflow/balance-service/internal/logging"
)

const (
	// ServiceName is reported by the health endpoint.
	ServiceName = "balance-service"

	HealthPath = "/health"
)

// HealthResponse is the body served on HealthPath.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// healthBody is encoded once; every request gets the same bytes.
var healthBody = mustMarshal(HealthResponse{Status: "ok", Service: ServiceName})

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// healthHandler answers every method with 200 and the fixed JSON body.
// The request is never read.
func healthHandler(logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(healthBody); err != nil {
			logger.Warn("Failed to write health response",
				"remote_addr", r.RemoteAddr,
				"error", err,
			)
		}
	}
}
