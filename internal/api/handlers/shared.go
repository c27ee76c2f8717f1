package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// now is the clock used for default as-of dates.
var now = time.Now

// parseLotFilter reads the lot filter query parameters shared by the
// purchase, status and distribution endpoints:
//
//	type, exclude_type, fund, exclude_fund  comma-separated lists, at most one
//	date                                    as-of date, YYYY-MM-DD, default today
func parseLotFilter(r *http.Request) (model.LotFilter, error) {
	q := r.URL.Query()
	return request.ParseLotFilter(
		q.Get("type"),
		q.Get("exclude_type"),
		q.Get("fund"),
		q.Get("exclude_fund"),
		q.Get("date"),
		now(),
	)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
