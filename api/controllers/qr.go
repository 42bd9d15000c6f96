package controllers

import (
	"net/http"

	"github.com/conectlink/conectlink-backend/api/responses"
	"github.com/conectlink/conectlink-backend/api/validators"
	"github.com/conectlink/conectlink-backend/internal/qr"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
)

type qrSettingsRequest struct {
	ForegroundColor string `json:"foreground_color" validate:"omitempty,max=20"`
	BackgroundColor string `json:"background_color" validate:"omitempty,max=20"`
	DotStyle        string `json:"dot_style" validate:"omitempty,max=50"`
	CornerStyle     string `json:"corner_style" validate:"omitempty,max=50"`
	LogoURL         string `json:"logo_url" validate:"omitempty,url,max=2048"`
	LogoSize        int    `json:"logo_size" validate:"omitempty,gte=0,lte=100"`
	ErrorCorrection string `json:"error_correction" validate:"omitempty,oneof=L M Q H"`
	Size            int    `json:"size" validate:"omitempty,gte=64,lte=2048"`
	UseGradient     bool   `json:"use_gradient"`
	GradientStart   string `json:"gradient_start" validate:"omitempty,max=20"`
	GradientEnd     string `json:"gradient_end" validate:"omitempty,max=20"`
}

func (req qrSettingsRequest) toInput() qr.SettingsInput {
	return qr.SettingsInput{
		ForegroundColor: req.ForegroundColor,
		BackgroundColor: req.BackgroundColor,
		DotStyle:        req.DotStyle,
		CornerStyle:     req.CornerStyle,
		LogoURL:         req.LogoURL,
		LogoSize:        req.LogoSize,
		ErrorCorrection: req.ErrorCorrection,
		Size:            req.Size,
		UseGradient:     req.UseGradient,
		GradientStart:   req.GradientStart,
		GradientEnd:     req.GradientEnd,
	}
}

// GetQRSettings returns the QR styling of a profile the caller owns.
func GetQRSettings(svc qr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr service unavailable"))
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

// PutQRSettings replaces the QR styling of a profile the caller owns.
// Custom styling beyond defaults requires a plan that allows it.
func PutQRSettings(svc qr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr service unavailable"))
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

		var body qrSettingsRequest
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

// PublicQRPayload returns the QR target URL plus styling for public
// rendering of a profile's QR code.
func PublicQRPayload(svc qr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr service unavailable"))
			return
		}

		profileID, err := pathUUID(r, "profileID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.BuildPayload(r.Context(), profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payload)
	}
}
