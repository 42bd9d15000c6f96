package controllers

import (
	"net/http"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/api/validators"
	"github.com/conectlink/conectlink-backend/internal/links"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

type createSocialLinkRequest struct {
	Platform  string `json:"platform" validate:"required,max=50"`
	URL       string `json:"url" validate:"required,url,max=2048"`
	Label     string `json:"label" validate:"omitempty,max=255"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

func (req createSocialLinkRequest) toInput() links.CreateSocialLinkInput {
	return links.CreateSocialLinkInput{
		Platform:  req.Platform,
		URL:       req.URL,
		Label:     req.Label,
		SortOrder: req.SortOrder,
	}
}

type updateSocialLinkRequest struct {
	URL       *string `json:"url" validate:"omitempty,url,max=2048"`
	Label     *string `json:"label" validate:"omitempty,max=255"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
	IsActive  *bool   `json:"is_active"`
}

func (req updateSocialLinkRequest) toInput() links.UpdateSocialLinkInput {
	return links.UpdateSocialLinkInput{
		URL:       req.URL,
		Label:     req.Label,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}
}

type createCustomLinkRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	URL         string `json:"url" validate:"required,url,max=2048"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Icon        string `json:"icon" validate:"omitempty,max=255"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,max=2048"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
}

func (req createCustomLinkRequest) toInput() links.CreateCustomLinkInput {
	return links.CreateCustomLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
		Thumbnail:   req.Thumbnail,
		SortOrder:   req.SortOrder,
	}
}

type updateCustomLinkRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	URL         *string `json:"url" validate:"omitempty,url,max=2048"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Icon        *string `json:"icon" validate:"omitempty,max=255"`
	Thumbnail   *string `json:"thumbnail" validate:"omitempty,max=2048"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active"`
}

func (req updateCustomLinkRequest) toInput() links.UpdateCustomLinkInput {
	return links.UpdateCustomLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
		Thumbnail:   req.Thumbnail,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
}

// CreateSocialLink adds a social platform link to a profile the caller owns.
func CreateSocialLink(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
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

		var body createSocialLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.CreateSocial(r.Context(), userID, profileID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

// ListSocialLinks lists the social links of a profile the caller owns.
func ListSocialLinks(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
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

		list, err := svc.ListSocial(r.Context(), userID, profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"links": list})
	}
}

// UpdateSocialLink applies a partial update to a social link.
func UpdateSocialLink(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		linkID, err := pathUUID(r, "linkID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateSocialLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.UpdateSocial(r.Context(), userID, linkID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, link)
	}
}

// DeleteSocialLink removes a social link from a profile the caller owns.
func DeleteSocialLink(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		linkID, err := pathUUID(r, "linkID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSocial(r.Context(), userID, linkID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}

// CreateCustomLink adds a custom link to a profile the caller owns, subject
// to the caller's plan limit.
func CreateCustomLink(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
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

		var body createCustomLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.CreateCustom(r.Context(), userID, profileID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

// ListCustomLinks lists the custom links of a profile the caller owns.
func ListCustomLinks(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
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

		list, err := svc.ListCustom(r.Context(), userID, profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"links": list})
	}
}

// UpdateCustomLink applies a partial update to a custom link.
func UpdateCustomLink(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		linkID, err := pathUUID(r, "linkID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCustomLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.UpdateCustom(r.Context(), userID, linkID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, link)
	}
}

// DeleteCustomLink removes a custom link from a profile the caller owns.
func DeleteCustomLink(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "links service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		linkID, err := pathUUID(r, "linkID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCustom(r.Context(), userID, linkID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}
