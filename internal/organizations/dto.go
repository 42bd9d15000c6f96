package organizations

import (
	"time"

	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// OrganizationDTO is the transport shape for an organization.
type OrganizationDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Logo        *string   `json:"logo,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModel(org *models.Organization) *OrganizationDTO {
	if org == nil {
		return nil
	}
	return &OrganizationDTO{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		Logo:        org.Logo,
		Type:        org.Type,
		Description: org.Description,
		IsActive:    org.IsActive,
		IsVerified:  org.IsVerified,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

func FromModels(orgs []models.Organization) []OrganizationDTO {
	out := make([]OrganizationDTO, 0, len(orgs))
	for i := range orgs {
		out = append(out, *FromModel(&orgs[i]))
	}
	return out
}
