package plans

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type stubPlansRepo struct {
	active []models.SubscriptionPlan
	bySlug map[string]*models.SubscriptionPlan
	err    error
}

func (s *stubPlansRepo) ListActive(context.Context) ([]models.SubscriptionPlan, error) {
	return s.active, s.err
}

func (s *stubPlansRepo) FindBySlug(_ context.Context, slug string) (*models.SubscriptionPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	plan, ok := s.bySlug[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (s *stubPlansRepo) FindByID(context.Context, uuid.UUID) (*models.SubscriptionPlan, error) {
	return nil, gorm.ErrRecordNotFound
}

func testPlan() models.SubscriptionPlan {
	return models.SubscriptionPlan{
		ID:              uuid.New(),
		Slug:            "profesional",
		Name:            "Profesional",
		Currency:        "USD",
		PriceMonthly:    decimal.RequireFromString("3.00"),
		PriceQuarterly:  decimal.RequireFromString("7.50"),
		PriceSemiannual: decimal.RequireFromString("15.00"),
		PriceAnnual:     decimal.RequireFromString("30.00"),
		IsFeatured:      true,
	}
}

func TestListPlansBuildsPricing(t *testing.T) {
	plan := testPlan()
	svc, err := NewService(&stubPlansRepo{active: []models.SubscriptionPlan{plan}})
	require.NoError(t, err)

	dtos, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 1)

	dto := dtos[0]
	assert.Equal(t, "profesional", dto.Slug)
	require.Len(t, dto.Pricing, 4)
	assert.Equal(t, enums.BillingCycleMonthly, dto.Pricing[0].Cycle)
	assert.Equal(t, 0, dto.Pricing[0].SavingsPercent)
	assert.Equal(t, enums.BillingCycleAnnual, dto.Pricing[3].Cycle)
	assert.True(t, dto.Pricing[3].Price.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 17, dto.Pricing[3].SavingsPercent)
}

func TestGetPlanBySlugNotFound(t *testing.T) {
	svc, err := NewService(&stubPlansRepo{bySlug: map[string]*models.SubscriptionPlan{}})
	require.NoError(t, err)

	_, err = svc.GetPlanBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestGetPlanBySlugRequiresSlug(t *testing.T) {
	svc, err := NewService(&stubPlansRepo{})
	require.NoError(t, err)

	_, err = svc.GetPlanBySlug(context.Background(), "")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}
