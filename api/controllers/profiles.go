package controllers

import (
	"net/http"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/api/validators"
	"github.com/conectlink/conectlink-backend/internal/profiles"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

type createProfileRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Slug     string  `json:"slug" validate:"omitempty,max=255"`
	Photo    *string `json:"photo"`
	JobTitle *string `json:"job_title" validate:"omitempty,max=255"`
	Slogan   *string `json:"slogan" validate:"omitempty,max=255"`
	Bio      string  `json:"bio" validate:"omitempty,max=2000"`
}

func (req createProfileRequest) toInput() profiles.CreateProfileInput {
	return profiles.CreateProfileInput{
		Name:     req.Name,
		Slug:     req.Slug,
		Photo:    req.Photo,
		JobTitle: req.JobTitle,
		Slogan:   req.Slogan,
		Bio:      req.Bio,
	}
}

type updateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Photo    *string `json:"photo"`
	JobTitle *string `json:"job_title" validate:"omitempty,max=255"`
	Slogan   *string `json:"slogan" validate:"omitempty,max=255"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
	IsActive *bool   `json:"is_active"`
}

func (req updateProfileRequest) toInput() profiles.UpdateProfileInput {
	return profiles.UpdateProfileInput{
		Name:     req.Name,
		Photo:    req.Photo,
		JobTitle: req.JobTitle,
		Slogan:   req.Slogan,
		Bio:      req.Bio,
		IsActive: req.IsActive,
	}
}

// CreateProfile creates a profile inside an organization the caller owns.
// Profile count is bounded by the caller's plan.
func CreateProfile(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orgID, err := pathUUID(r, "orgID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Create(r.Context(), userID, orgID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// ListProfiles lists the profiles of an organization the caller owns.
func ListProfiles(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orgID, err := pathUUID(r, "orgID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByOrganization(r.Context(), userID, orgID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"profiles": list})
	}
}

// GetProfile fetches a profile the caller owns.
func GetProfile(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profileID, err := pathUUID(r, "profileID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetByID(r.Context(), userID, profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// UpdateProfile applies a partial update to a profile the caller owns.
func UpdateProfile(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profileID, err := pathUUID(r, "profileID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), userID, profileID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// DeleteProfile soft-deletes a profile the caller owns along with its links,
// products, and alerts.
func DeleteProfile(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profileID, err := pathUUID(r, "profileID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, profileID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}
