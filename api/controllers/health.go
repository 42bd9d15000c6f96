package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/db"
	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

// HealthLive reports process liveness without touching dependencies.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ConectLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and Redis before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["database"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "database readiness check failed", err)
				}
			} else {
				checks["database"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "redis readiness check failed", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		w.Header().Set("X-ConectLink-Env", cfg.App.Env)
		if !healthy {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, checks)
			return
		}
		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
