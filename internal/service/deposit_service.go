package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
)

// DepositSortKeys lists the columns fixed deposits can be ordered by.
// "date" orders by maturity date.
var DepositSortKeys = []string{"amt", "name", "rate", "date"}

// DepositService records and lists fixed deposits.
type DepositService struct {
	depositRepo *repository.DepositRepository
	logger      zerolog.Logger
}

// NewDepositService creates a new DepositService.
func NewDepositService(depositRepo *repository.DepositRepository, logger zerolog.Logger) *DepositService {
	return &DepositService{
		depositRepo: depositRepo,
		logger:      logger,
	}
}

// CreateDeposit stores a fixed deposit. The request is expected to have
// passed validation.ValidateCreateDeposit.
func (s *DepositService) CreateDeposit(ctx context.Context, req request.CreateDepositRequest) (*model.FixedDeposit, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate: %w", err)
	}
	maturityAmount, err := decimal.NewFromString(req.MaturityAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid maturity amount: %w", err)
	}
	tenure, err := strconv.Atoi(strings.TrimSpace(req.Tenure))
	if err != nil {
		return nil, fmt.Errorf("invalid tenure: %w", err)
	}
	depositDate, err := time.Parse("2006-01-02", req.DepositDate)
	if err != nil {
		return nil, fmt.Errorf("invalid deposit date: %w", err)
	}
	maturityDate, err := time.Parse("2006-01-02", req.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("invalid maturity date: %w", err)
	}

	fd := &model.FixedDeposit{
		Name:           strings.TrimSpace(req.Name),
		Amount:         amount.InexactFloat64(),
		Rate:           rate.InexactFloat64(),
		Tenure:         tenure,
		DepositDate:    depositDate,
		MaturityDate:   maturityDate,
		MaturityAmount: maturityAmount.InexactFloat64(),
	}
	if err := s.depositRepo.InsertDeposit(ctx, fd); err != nil {
		return nil, err
	}

	s.logger.Info().Str("deposit_id", fd.ID).Str("name", fd.Name).Msg("fixed deposit recorded")
	return fd, nil
}

// GetDeposits lists fixed deposits ordered ascending by sortKey (one of
// DepositSortKeys; empty means "amt"). Ties keep insertion order.
func (s *DepositService) GetDeposits(ctx context.Context, sortKey string) ([]model.FixedDeposit, error) {
	if sortKey == "" {
		sortKey = "amt"
	}
	var compare func(a, b model.FixedDeposit) int
	switch sortKey {
	case "amt":
		compare = func(a, b model.FixedDeposit) int { return cmp.Compare(a.Amount, b.Amount) }
	case "name":
		compare = func(a, b model.FixedDeposit) int { return cmp.Compare(a.Name, b.Name) }
	case "rate":
		compare = func(a, b model.FixedDeposit) int { return cmp.Compare(a.Rate, b.Rate) }
	case "date":
		compare = func(a, b model.FixedDeposit) int { return a.MaturityDate.Compare(b.MaturityDate) }
	default:
		return nil, fmt.Errorf("unknown sort key %q (want one of %v)", sortKey, DepositSortKeys)
	}

	deposits, err := s.depositRepo.GetDeposits(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(deposits, compare)
	return deposits, nil
}
