package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
)

// resolveLotFilter expands the fund ID prefixes in filter into full IDs.
//
// Type lists and the as-of date pass through unchanged. An unknown or
// ambiguous prefix fails the whole filter.
func resolveLotFilter(ctx context.Context, fundRepo *repository.FundRepository, filter model.LotFilter) (model.LotFilter, error) {
	if err := repository.ValidateLotFilter(filter); err != nil {
		return model.LotFilter{}, err
	}

	var err error
	if filter.FundIDs, err = resolveFundIDs(ctx, fundRepo, filter.FundIDs); err != nil {
		return model.LotFilter{}, err
	}
	if filter.ExcludeFundIDs, err = resolveFundIDs(ctx, fundRepo, filter.ExcludeFundIDs); err != nil {
		return model.LotFilter{}, err
	}
	return filter, nil
}

func resolveFundIDs(ctx context.Context, fundRepo *repository.FundRepository, prefixes []string) ([]string, error) {
	if len(prefixes) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		id, err := fundRepo.ResolveFundID(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("fund %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fundIDsOf returns the distinct fund IDs of lots in first-appearance order.
func fundIDsOf(lots []model.PurchaseLot) []string {
	seen := make(map[string]struct{}, len(lots))
	var ids []string
	for _, l := range lots {
		if _, ok := seen[l.FundID]; ok {
			continue
		}
		seen[l.FundID] = struct{}{}
		ids = append(ids, l.FundID)
	}
	return ids
}
