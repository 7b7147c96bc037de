package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/inspectai/inspectai-backend/api/responses"
	"github.com/inspectai/inspectai-backend/pkg/config"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
	"github.com/inspectai/inspectai-backend/pkg/logger"
)

const envHeader = "X-InspectAI-Env"

// Pinger is the health-check surface shared by the backing clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing service. Nil pingers are skipped so
// partial deployments (no pubsub, no redis) still report ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable")
				responses.WriteError(r.Context(), logg, w, wrapped)
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
