// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: period selection, allocation mode selection and the usual form
// plumbing shared by the handlers.

package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taksa/internal/core"
)

// PeriodParams holds a parsed quarter/year pair from request parameters.
type PeriodParams struct {
	Quarter int
	Year    int
}

// currentPeriod returns the quarter/year the wall clock falls into.
func currentPeriod() PeriodParams {
	now := time.Now()
	return PeriodParams{
		Quarter: (int(now.Month())-1)/3 + 1,
		Year:    now.Year(),
	}
}

// ParsePeriodParams extracts quarter and year from values, defaulting to the
// current quarter. An out-of-range quarter is corrected to the current one.
func ParsePeriodParams(values url.Values) PeriodParams {
	params := currentPeriod()

	if v := strings.TrimSpace(values.Get("quarter")); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			params.Quarter = q
		}
	}
	if v := strings.TrimSpace(values.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			params.Year = y
		}
	}

	if params.Quarter < 1 || params.Quarter > 4 {
		params.Quarter = currentPeriod().Quarter
	}
	return params
}

// ParseFeeMode extracts the allocation mode, falling back to the given
// default for an absent or unknown value.
func ParseFeeMode(values url.Values, fallback core.FeeMode) core.FeeMode {
	mode := core.FeeMode(strings.TrimSpace(values.Get("mode")))
	if !mode.IsValid() {
		return fallback
	}
	return mode
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Невалиден формат на заявката")
	}
	return nil
}
