package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
)

// FundService handles fund registry operations.
type FundService struct {
	fundRepo *repository.FundRepository
	logger   zerolog.Logger
}

// NewFundService creates a new FundService with the provided repository dependencies.
func NewFundService(fundRepo *repository.FundRepository, logger zerolog.Logger) *FundService {
	return &FundService{
		fundRepo: fundRepo,
		logger:   logger,
	}
}

// CreateFund registers a new fund. The request is expected to have passed
// validation.ValidateCreateFund.
//
// Returns the created fund with its generated ID.
func (s *FundService) CreateFund(ctx context.Context, req request.CreateFundRequest) (*model.Fund, error) {
	fund := &model.Fund{
		Name:            strings.TrimSpace(req.Name),
		Type:            strings.TrimSpace(req.Type),
		Folio:           strings.TrimSpace(req.Folio),
		SchemeCode:      strings.TrimSpace(req.SchemeCode),
		MoneycontrolURL: strings.TrimSpace(req.MoneycontrolURL),
		Symbol:          strings.TrimSpace(req.Symbol),
	}

	if err := s.fundRepo.InsertFund(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}

	s.logger.Info().Str("fund_id", fund.ID).Str("name", fund.Name).Msg("fund created")
	return fund, nil
}

// GetAllFunds retrieves every registered fund ordered by name.
func (s *FundService) GetAllFunds(ctx context.Context) ([]model.Fund, error) {
	return s.fundRepo.GetFunds(ctx)
}

// GetFund retrieves a fund by ID or unique ID prefix.
func (s *FundService) GetFund(ctx context.Context, idOrPrefix string) (model.Fund, error) {
	id, err := s.fundRepo.ResolveFundID(ctx, idOrPrefix)
	if err != nil {
		return model.Fund{}, err
	}
	return s.fundRepo.GetFund(ctx, id)
}

// DeleteFund removes a fund by ID or unique ID prefix.
//
// Returns:
//   - apperrors.ErrFundNotFound if no fund matches
//   - apperrors.ErrAmbiguousID if the prefix matches several funds
//   - apperrors.ErrFundInUse while purchases reference the fund
func (s *FundService) DeleteFund(ctx context.Context, idOrPrefix string) (model.Fund, error) {
	fund, err := s.GetFund(ctx, idOrPrefix)
	if err != nil {
		return model.Fund{}, err
	}

	if err := s.fundRepo.DeleteFund(ctx, fund.ID); err != nil {
		return model.Fund{}, fmt.Errorf("failed to delete fund: %w", err)
	}

	s.logger.Info().Str("fund_id", fund.ID).Str("name", fund.Name).Msg("fund deleted")
	return fund, nil
}
