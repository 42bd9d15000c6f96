package alerts

import (
	"time"

	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
)

// AlertDTO is the transport shape for a floating alert.
type AlertDTO struct {
	ID            uuid.UUID       `json:"id"`
	ProfileID     uuid.UUID       `json:"profile_id"`
	Type          enums.AlertType `json:"type"`
	Title         string          `json:"title"`
	Message       string          `json:"message,omitempty"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
	LinkURL       string          `json:"link_url,omitempty"`
	LinkText      string          `json:"link_text,omitempty"`
	StartsAt      *time.Time      `json:"starts_at,omitempty"`
	EndsAt        *time.Time      `json:"ends_at,omitempty"`
	IsDismissible bool            `json:"is_dismissible"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func fromModel(a *models.FloatingAlert) *AlertDTO {
	if a == nil {
		return nil
	}
	return &AlertDTO{
		ID:            a.ID,
		ProfileID:     a.ProfileID,
		Type:          a.Type,
		Title:         a.Title,
		Message:       a.Message,
		Icon:          a.Icon,
		Color:         a.Color,
		LinkURL:       a.LinkURL,
		LinkText:      a.LinkText,
		StartsAt:      a.StartsAt,
		EndsAt:        a.EndsAt,
		IsDismissible: a.IsDismissible,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
