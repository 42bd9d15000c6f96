package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type productsRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type profileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type organizationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

type creationGate interface {
	CanCreateProduct(ctx context.Context, userID, orgID uuid.UUID) error
	CanUploadImages(ctx context.Context, userID uuid.UUID) (bool, error)
}

// CreateProductInput captures the fields accepted on creation.
type CreateProductInput struct {
	Name        string
	Description string
	Image       string
	Price       decimal.Decimal
	SalePrice   *decimal.Decimal
	Currency    string
	ExternalURL string
	SortOrder   int
	IsFeatured  bool
}

// UpdateProductInput captures the allowed fields for mutation.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Image       *string
	Price       *decimal.Decimal
	SalePrice   *decimal.Decimal
	ClearSale   bool
	Currency    *string
	ExternalURL *string
	SortOrder   *int
	IsFeatured  *bool
	IsAvailable *bool
}

// Service exposes product operations.
type Service interface {
	Create(ctx context.Context, userID, profileID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, userID, productID uuid.UUID) (*ProductDTO, error)
	ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]ProductDTO, error)
	// ListAvailable returns the public storefront view of a profile.
	ListAvailable(ctx context.Context, profileID uuid.UUID) ([]ProductDTO, error)
	Update(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	repo     productsRepository
	profiles profileReader
	orgs     organizationReader
	gate     creationGate
}

// NewService builds a products service with the provided dependencies.
func NewService(repo productsRepository, profiles profileReader, orgs organizationReader, gate creationGate) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if orgs == nil {
		return nil, fmt.Errorf("organizations repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("entitlements gate required")
	}
	return &service{repo: repo, profiles: profiles, orgs: orgs, gate: gate}, nil
}

func (s *service) Create(ctx context.Context, userID, profileID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.SalePrice != nil && input.SalePrice.GreaterThanOrEqual(input.Price) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must be below the list price")
	}

	orgID, err := s.resolveOwnedOrg(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CanCreateProduct(ctx, userID, orgID); err != nil {
		return nil, err
	}
	if input.Image != "" {
		allowed, err := s.gate.CanUploadImages(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "plan does not allow product images")
		}
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	product := &models.Product{
		ProfileID:   profileID,
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		Currency:    currency,
		ExternalURL: input.ExternalURL,
		SortOrder:   input.SortOrder,
		IsFeatured:  input.IsFeatured,
		IsAvailable: true,
	}
	if _, err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return fromModel(product), nil
}

func (s *service) GetByID(ctx context.Context, userID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return fromModel(product), nil
}

func (s *service) ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]ProductDTO, error) {
	if _, err := s.resolveOwnedOrg(ctx, userID, profileID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListAvailable(ctx context.Context, profileID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		if rows[i].IsAvailable {
			out = append(out, *fromModel(&rows[i]))
		}
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Image != nil {
		if *input.Image != "" {
			allowed, err := s.gate.CanUploadImages(ctx, userID)
			if err != nil {
				return nil, err
			}
			if !allowed {
				return nil, pkgerrors.New(pkgerrors.CodeForbidden, "plan does not allow product images")
			}
		}
		product.Image = *input.Image
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.ClearSale {
		product.SalePrice = nil
	} else if input.SalePrice != nil {
		product.SalePrice = input.SalePrice
	}
	if product.SalePrice != nil && product.SalePrice.GreaterThanOrEqual(product.Price) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must be below the list price")
	}
	if input.Currency != nil {
		product.Currency = *input.Currency
	}
	if input.ExternalURL != nil {
		product.ExternalURL = *input.ExternalURL
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return fromModel(product), nil
}

func (s *service) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if _, err := s.resolveOwnedOrg(ctx, userID, product.ProfileID); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) resolveOwnedOrg(ctx context.Context, userID, profileID uuid.UUID) (uuid.UUID, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	org, err := s.orgs.FindByID(ctx, profile.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load organization")
	}
	if org.UserID != userID {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "profile belongs to another user")
	}
	return org.ID, nil
}
