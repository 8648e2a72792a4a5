package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type versionFunc func(ctx context.Context) (string, error)

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

type healthResponse struct {
	Status        string            `json:"status"`
	SchemaVersion string            `json:"schema_version,omitempty"`
	Checks        map[string]string `json:"checks"`
}

const healthTimeout = 2 * time.Second

// newHealthHandler reports 200 when every dependency answers, 503 otherwise.
func newHealthHandler(version versionFunc, checks []healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		for _, c := range checks {
			if err := c.ping(ctx); err != nil {
				slog.WarnContext(ctx, "health check failed", slog.String("check", c.name), slog.Any("error", err))
				resp.Status = "degraded"
				resp.Checks[c.name] = "unavailable"
				continue
			}
			resp.Checks[c.name] = "ok"
		}
		if version != nil {
			if v, err := version(ctx); err == nil {
				resp.SchemaVersion = v
			}
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
