package valuation

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the column positions are ordered by.
type SortKey string

const (
	SortByAppreciation SortKey = "appr"
	SortByAmount       SortKey = "amt"
	SortByName         SortKey = "name"
	SortByType         SortKey = "type"
	SortByAnnualized   SortKey = "yappr"
)

// ErrUnknownSortKey is returned by ParseSortKey for keys outside SortKeys.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKeys lists the accepted keys in display order.
var SortKeys = []SortKey{SortByAppreciation, SortByAmount, SortByName, SortByType, SortByAnnualized}

// ParseSortKey validates a user supplied sort key. An empty string selects
// SortByAppreciation.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByAppreciation, nil
	}
	key := SortKey(strings.ToLower(s))
	if !slices.Contains(SortKeys, key) {
		return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownSortKey, s, SortKeys)
	}
	return key, nil
}

// SortPositions orders positions in place by key, ascending. The sort is
// stable so ties keep their insertion order. Not applicable annualized
// returns order after every number.
func SortPositions(positions []Position, key SortKey) {
	slices.SortStableFunc(positions, comparator(key))
}

func comparator(key SortKey) func(a, b Position) int {
	switch key {
	case SortByAmount:
		return func(a, b Position) int { return cmp.Compare(a.Amount, b.Amount) }
	case SortByName:
		return func(a, b Position) int { return cmp.Compare(a.Name, b.Name) }
	case SortByType:
		return func(a, b Position) int { return cmp.Compare(a.Type, b.Type) }
	case SortByAnnualized:
		return func(a, b Position) int { return compareReturns(a.Annualized, b.Annualized) }
	default:
		return func(a, b Position) int { return cmp.Compare(a.Appreciation, b.Appreciation) }
	}
}

func compareReturns(a, b Return) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	}
	return cmp.Compare(a.Pct, b.Pct)
}
