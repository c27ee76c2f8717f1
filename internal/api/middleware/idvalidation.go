// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/validation"
)

// ValidateIDPrefix returns a middleware that checks the named URL parameter
// holds a full ID or an ID prefix. Returns 400 Bad Request if the parameter
// is missing or contains characters an ID cannot.
//
// Example usage in router:
//
//	r.Route("/{fundId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateIDPrefix("fundId"))
//	    r.Get("/", handler.Fund)
//	    r.Delete("/", handler.DeleteFund)
//	})
func ValidateIDPrefix(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)

			if id == "" {
				response.RespondError(w, r, http.StatusBadRequest, param+" is required", "")
				return
			}

			if err := validation.ValidateIDPrefix(id); err != nil {
				response.RespondError(w, r, http.StatusBadRequest, "invalid "+param, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
