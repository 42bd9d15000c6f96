package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// ProfileDTO is the transport shape for a profile.
type ProfileDTO struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           *string   `json:"slug,omitempty"`
	Photo          *string   `json:"photo,omitempty"`
	JobTitle       *string   `json:"job_title,omitempty"`
	Slogan         *string   `json:"slogan,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	IsPrimary      bool      `json:"is_primary"`
	IsActive       bool      `json:"is_active"`
	ViewsCount     uint      `json:"views_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Slug:           p.Slug,
		Photo:          p.Photo,
		JobTitle:       p.JobTitle,
		Slogan:         p.Slogan,
		Bio:            p.Bio,
		IsPrimary:      p.IsPrimary,
		IsActive:       p.IsActive,
		ViewsCount:     p.ViewsCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromModels(ps []models.Profile) []ProfileDTO {
	out := make([]ProfileDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *FromModel(&ps[i]))
	}
	return out
}
