package controllers

import (
	"context"
	"net/http"

	"github.com/perfval/perfval-backend/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports process liveness plus the reachability of the database and
// redis. A failing dependency turns the overall status degraded but the
// endpoint still answers 200 so probes can read the detail.
func Health(db, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		checks := map[string]string{}

		for name, dep := range map[string]pinger{
			"database": db,
			"redis":    cache,
		} {
			if dep == nil {
				checks[name] = "not configured"
				status = "degraded"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				checks[name] = "unreachable"
				status = "degraded"
				continue
			}
			checks[name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
