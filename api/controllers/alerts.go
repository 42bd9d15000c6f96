package controllers

import (
	"net/http"
	"time"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/api/validators"
	"github.com/conectlink/conectlink-backend/internal/alerts"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

type createAlertRequest struct {
	Type          string     `json:"type" validate:"required,max=50"`
	Title         string     `json:"title" validate:"required,max=255"`
	Message       string     `json:"message" validate:"omitempty,max=1000"`
	Icon          string     `json:"icon" validate:"omitempty,max=255"`
	Color         string     `json:"color" validate:"omitempty,max=50"`
	LinkURL       string     `json:"link_url" validate:"omitempty,url,max=2048"`
	LinkText      string     `json:"link_text" validate:"omitempty,max=255"`
	StartsAt      *time.Time `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at"`
	IsDismissible *bool      `json:"is_dismissible"`
}

func (req createAlertRequest) toInput() (alerts.CreateAlertInput, error) {
	alertType, err := enums.ParseAlertType(req.Type)
	if err != nil {
		return alerts.CreateAlertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid alert type")
	}
	return alerts.CreateAlertInput{
		Type:          alertType,
		Title:         req.Title,
		Message:       req.Message,
		Icon:          req.Icon,
		Color:         req.Color,
		LinkURL:       req.LinkURL,
		LinkText:      req.LinkText,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		IsDismissible: req.IsDismissible,
	}, nil
}

type updateAlertRequest struct {
	Title         *string    `json:"title" validate:"omitempty,max=255"`
	Message       *string    `json:"message" validate:"omitempty,max=1000"`
	Icon          *string    `json:"icon" validate:"omitempty,max=255"`
	Color         *string    `json:"color" validate:"omitempty,max=50"`
	LinkURL       *string    `json:"link_url" validate:"omitempty,url,max=2048"`
	LinkText      *string    `json:"link_text" validate:"omitempty,max=255"`
	StartsAt      *time.Time `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at"`
	IsDismissible *bool      `json:"is_dismissible"`
	IsActive      *bool      `json:"is_active"`
}

func (req updateAlertRequest) toInput() alerts.UpdateAlertInput {
	return alerts.UpdateAlertInput{
		Title:         req.Title,
		Message:       req.Message,
		Icon:          req.Icon,
		Color:         req.Color,
		LinkURL:       req.LinkURL,
		LinkText:      req.LinkText,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		IsDismissible: req.IsDismissible,
		IsActive:      req.IsActive,
	}
}

// CreateAlert attaches a floating alert to a profile the caller owns,
// subject to the caller's plan limit.
func CreateAlert(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
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

		var body createAlertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.Create(r.Context(), userID, profileID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, alert)
	}
}

// ListAlerts lists the alerts of a profile the caller owns.
func ListAlerts(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
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

		list, err := svc.List(r.Context(), userID, profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"alerts": list})
	}
}

// UpdateAlert applies a partial update to an alert.
func UpdateAlert(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alertID, err := pathUUID(r, "alertID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateAlertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.Update(r.Context(), userID, alertID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, alert)
	}
}

// DeleteAlert removes an alert from a profile the caller owns.
func DeleteAlert(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alertID, err := pathUUID(r, "alertID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, alertID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "deleted"})
	}
}
