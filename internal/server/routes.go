package server

import (
	"github.com/gorilla/mux"

	"github.com/payflow/balance-service/internal/logging"
)

// newRouter registers the health route. Any method matches; unknown paths
// get the router's default 404.
func newRouter(logger logging.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Handle(HealthPath, healthHandler(logger))
	return r
}
