package controllers

import (
	"net/http"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/internal/catalog"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

// SocialPlatforms lists the supported social platforms with their display
// metadata, sorted by key.
func SocialPlatforms(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"platforms": cat.Platforms()})
	}
}

// AlertTypes lists the supported alert types with their display metadata.
func AlertTypes(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"alert_types": cat.AlertTypes()})
	}
}
