package links

import (
	"time"

	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// SocialLinkDTO is the transport shape for a social link, enriched with the
// platform's display metadata.
type SocialLinkDTO struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	Platform  string    `json:"platform"`
	Label     string    `json:"label,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	URL       string    `json:"url"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomLinkDTO is the transport shape for a custom link.
type CustomLinkDTO struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"profile_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	ClicksCount int       `json:"clicks_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func socialFromModel(l *models.SocialLink) *SocialLinkDTO {
	if l == nil {
		return nil
	}
	return &SocialLinkDTO{
		ID:        l.ID,
		ProfileID: l.ProfileID,
		Platform:  l.Platform,
		Label:     l.Label,
		URL:       l.URL,
		SortOrder: l.SortOrder,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func customFromModel(l *models.CustomLink) *CustomLinkDTO {
	if l == nil {
		return nil
	}
	return &CustomLinkDTO{
		ID:          l.ID,
		ProfileID:   l.ProfileID,
		Title:       l.Title,
		URL:         l.URL,
		Description: l.Description,
		Icon:        l.Icon,
		Thumbnail:   l.Thumbnail,
		SortOrder:   l.SortOrder,
		IsActive:    l.IsActive,
		ClicksCount: l.ClicksCount,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
