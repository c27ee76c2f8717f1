package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
)

// UnitsPrecision is the number of decimal places units are rounded to.
const UnitsPrecision = 3

// PurchaseService records, lists and removes purchase lots.
type PurchaseService struct {
	purchaseRepo *repository.PurchaseRepository
	fundRepo     *repository.FundRepository
	logger       zerolog.Logger
}

// NewPurchaseService creates a new PurchaseService with the provided repository dependencies.
func NewPurchaseService(
	purchaseRepo *repository.PurchaseRepository,
	fundRepo *repository.FundRepository,
	logger zerolog.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		fundRepo:     fundRepo,
		logger:       logger,
	}
}

// CreatePurchase records a buy of a fund.
//
// NAV and amount are parsed as exact decimals and the units bought are
// amount / nav rounded to UnitsPrecision places. The request is expected to
// have passed validation.ValidateCreatePurchase; values that still do not
// parse yield ErrInvalidAmount or ErrInvalidDate.
//
// Returns the stored lot, carrying the fund's name and type.
func (s *PurchaseService) CreatePurchase(ctx context.Context, req request.CreatePurchaseRequest) (*model.PurchaseLot, error) {
	fundID, err := s.fundRepo.ResolveFundID(ctx, req.FundID)
	if err != nil {
		return nil, err
	}
	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return nil, err
	}

	nav, err := decimal.NewFromString(req.NAV)
	if err != nil || !nav.IsPositive() {
		return nil, fmt.Errorf("%w: nav %q", apperrors.ErrInvalidAmount, req.NAV)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount %q", apperrors.ErrInvalidAmount, req.Amount)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, req.Date)
	}

	units := Units(amount, nav)
	if !units.IsPositive() {
		return nil, fmt.Errorf("%w: %s at nav %s buys no units", apperrors.ErrInvalidAmount, amount, nav)
	}

	lot := &model.PurchaseLot{
		FundID:   fund.ID,
		FundName: fund.Name,
		FundType: fund.Type,
		Amount:   amount.InexactFloat64(),
		NAV:      nav.InexactFloat64(),
		Units:    units.InexactFloat64(),
		Date:     date,
	}
	if err := s.purchaseRepo.InsertPurchase(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	s.logger.Info().
		Str("purchase_id", lot.ID).
		Str("fund", fund.Name).
		Str("amount", amount.String()).
		Str("units", units.String()).
		Msg("purchase recorded")
	return lot, nil
}

// Units returns amount / nav rounded half away from zero to UnitsPrecision places.
func Units(amount, nav decimal.Decimal) decimal.Decimal {
	return amount.DivRound(nav, UnitsPrecision)
}

// GetPurchases lists the lots matching filter, oldest first. Fund IDs in the
// filter may be unique prefixes.
func (s *PurchaseService) GetPurchases(ctx context.Context, filter model.LotFilter) ([]model.PurchaseLot, error) {
	resolved, err := resolveLotFilter(ctx, s.fundRepo, filter)
	if err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetLots(ctx, resolved)
}

// DeletePurchase removes a lot by ID or unique ID prefix and returns the full ID.
func (s *PurchaseService) DeletePurchase(ctx context.Context, idOrPrefix string) (string, error) {
	id, err := s.purchaseRepo.ResolvePurchaseID(ctx, idOrPrefix)
	if err != nil {
		return "", err
	}
	if err := s.purchaseRepo.DeletePurchase(ctx, id); err != nil {
		return "", err
	}

	s.logger.Info().Str("purchase_id", id).Msg("purchase deleted")
	return id, nil
}
