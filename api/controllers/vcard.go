package controllers

import (
	"net/http"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/api/validators"
	"github.com/conectlink/conectlink-backend/internal/vcard"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

type vcardSettingsRequest struct {
	FirstName    string `json:"first_name" validate:"omitempty,max=255"`
	LastName     string `json:"last_name" validate:"omitempty,max=255"`
	Organization string `json:"organization" validate:"omitempty,max=255"`
	JobTitle     string `json:"job_title" validate:"omitempty,max=255"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
	Phone        string `json:"phone" validate:"omitempty,max=50"`
	PhoneWork    string `json:"phone_work" validate:"omitempty,max=50"`
	Website      string `json:"website" validate:"omitempty,url,max=2048"`
	Street       string `json:"street" validate:"omitempty,max=255"`
	City         string `json:"city" validate:"omitempty,max=255"`
	State        string `json:"state" validate:"omitempty,max=255"`
	PostalCode   string `json:"postal_code" validate:"omitempty,max=20"`
	Country      string `json:"country" validate:"omitempty,max=255"`
	Note         string `json:"note" validate:"omitempty,max=1000"`
	IsEnabled    bool   `json:"is_enabled"`
}

func (req vcardSettingsRequest) toInput() vcard.SettingsInput {
	return vcard.SettingsInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Organization: req.Organization,
		JobTitle:     req.JobTitle,
		Email:        req.Email,
		Phone:        req.Phone,
		PhoneWork:    req.PhoneWork,
		Website:      req.Website,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Note:         req.Note,
		IsEnabled:    req.IsEnabled,
	}
}

// GetVCardSettings returns the vCard settings of a profile the caller owns.
func GetVCardSettings(svc vcard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vcard service unavailable"))
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

		settings, err := svc.Get(r.Context(), userID, profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, settings)
	}
}

// PutVCardSettings replaces the vCard settings of a profile the caller owns.
func PutVCardSettings(svc vcard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vcard service unavailable"))
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

		var body vcardSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.Put(r.Context(), userID, profileID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, settings)
	}
}
