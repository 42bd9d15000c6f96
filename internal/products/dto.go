package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// ProductDTO is the transport shape for a showcase product.
type ProductDTO struct {
	ID             uuid.UUID        `json:"id"`
	ProfileID      uuid.UUID        `json:"profile_id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Image          string           `json:"image,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	SalePrice      *decimal.Decimal `json:"sale_price,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	Currency       string           `json:"currency"`
	ExternalURL    string           `json:"external_url,omitempty"`
	SortOrder      int              `json:"sort_order"`
	IsFeatured     bool             `json:"is_featured"`
	IsAvailable    bool             `json:"is_available"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func fromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:             p.ID,
		ProfileID:      p.ProfileID,
		Name:           p.Name,
		Description:    p.Description,
		Image:          p.Image,
		Price:          p.Price,
		SalePrice:      p.SalePrice,
		EffectivePrice: p.EffectivePrice(),
		Currency:       p.Currency,
		ExternalURL:    p.ExternalURL,
		SortOrder:      p.SortOrder,
		IsFeatured:     p.IsFeatured,
		IsAvailable:    p.IsAvailable,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
