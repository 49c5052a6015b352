package http

import "net/http"

// HealthHandler reports liveness in the same JSON envelope the rest of
// the API speaks.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
