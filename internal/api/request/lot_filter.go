package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// ParseLotFilter builds a lot filter from raw query parameters.
//
// The type and fund parameters are comma-separated lists; at most one of
// them may be non-empty. dateParam is the as-of date in YYYY-MM-DD form;
// empty means today.
//
// Parameters:
//   - typeParam, excludeTypeParam: fund types to include or exclude
//   - fundParam, excludeFundParam: fund IDs (or unique prefixes) to include or exclude
//   - dateParam: as-of date
//   - now: the current time, used when dateParam is empty
//
// Returns ErrInvalidFilter when more than one list is given and
// ErrInvalidDate when dateParam does not parse.
func ParseLotFilter(typeParam, excludeTypeParam, fundParam, excludeFundParam, dateParam string, now time.Time) (model.LotFilter, error) {
	filter := model.LotFilter{
		Types:          SplitList(typeParam),
		ExcludeTypes:   SplitList(excludeTypeParam),
		FundIDs:        SplitList(fundParam),
		ExcludeFundIDs: SplitList(excludeFundParam),
	}

	set := 0
	for _, l := range [][]string{filter.Types, filter.ExcludeTypes, filter.FundIDs, filter.ExcludeFundIDs} {
		if len(l) > 0 {
			set++
		}
	}
	if set > 1 {
		return model.LotFilter{}, apperrors.ErrInvalidFilter
	}

	asOf, err := ParseDate(dateParam, now)
	if err != nil {
		return model.LotFilter{}, err
	}
	filter.AsOf = asOf

	return filter, nil
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC. Empty means the
// calendar date of now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		n := now.UTC()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
	}
	return t, nil
}

// SplitList splits a comma-separated parameter, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
