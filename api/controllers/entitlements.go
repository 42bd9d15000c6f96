package controllers

import (
	"net/http"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/internal/entitlements"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

// Entitlements returns the caller's effective feature limits and the plan
// they come from.
func Entitlements(svc entitlements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entitlements service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolution, err := svc.Resolve(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resolution)
	}
}
