package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a showcase item on a public profile. Purchases happen off-site
// through the external URL, so there is no inventory or order tracking here.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID   uuid.UUID        `gorm:"column:profile_id;type:uuid;not null;index"`
	Name        string           `gorm:"column:name;not null"`
	Description string           `gorm:"column:description"`
	Image       string           `gorm:"column:image"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	SalePrice   *decimal.Decimal `gorm:"column:sale_price;type:numeric(10,2)"`
	Currency    string           `gorm:"column:currency;type:varchar(3);not null;default:'USD'"`
	ExternalURL string           `gorm:"column:external_url"`
	SortOrder   int              `gorm:"column:sort_order;not null;default:0"`
	IsFeatured  bool             `gorm:"column:is_featured;not null;default:false"`
	IsAvailable bool             `gorm:"column:is_available;not null;default:true"`
	CreatedAt   time.Time        `gorm:"column:created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the sale price when set, the list price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
