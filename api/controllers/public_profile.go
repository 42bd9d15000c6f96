package controllers

import (
	"net/http"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/internal/alerts"
	"github.com/conectlink/conectlink-backend/internal/links"
	"github.com/conectlink/conectlink-backend/internal/products"
	"github.com/conectlink/conectlink-backend/internal/profiles"
	"github.com/conectlink/conectlink-backend/internal/vcard"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

// PublicProfile assembles the full public rendering payload for a profile:
// the profile itself plus its active links, available products, and any
// visible alerts. Resolution is by organization slug with an optional
// profile slug for multi-profile organizations.
func PublicProfile(
	profileSvc profiles.Service,
	linkSvc links.Service,
	productSvc products.Service,
	alertSvc alerts.Service,
	logg *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if profileSvc == nil || linkSvc == nil || productSvc == nil || alertSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "public profile services unavailable"))
			return
		}

		orgSlug := pathString(r, "orgSlug")
		if orgSlug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "organization slug is required"))
			return
		}
		var profileSlug *string
		if raw := pathString(r, "profileSlug"); raw != "" {
			profileSlug = &raw
		}

		profile, err := profileSvc.ResolvePublic(r.Context(), orgSlug, profileSlug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		publicLinks, err := linkSvc.ListPublic(r.Context(), profile.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		available, err := productSvc.ListAvailable(r.Context(), profile.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visible, err := alertSvc.ListVisible(r.Context(), profile.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"profile":  profile,
			"links":    publicLinks,
			"products": available,
			"alerts":   visible,
		})
	}
}

// PublicVCard renders the downloadable vCard for a profile. The payload is
// served as text/vcard with an attachment disposition so browsers trigger a
// contact download.
func PublicVCard(svc vcard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vcard service unavailable"))
			return
		}

		profileID, err := pathUUID(r, "profileID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.RenderPublic(r.Context(), profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/vcard; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="contact.vcf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(card))
	}
}

// LinkClick records a click on a custom link. The endpoint is public and
// fire-and-forget from the caller's perspective.
func LinkClick(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
			return
		}

		linkID, err := pathUUID(r, "linkID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.TrackClick(r.Context(), linkID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "recorded"})
	}
}
