package yelp

import (
	"fmt"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
)

const (
	// DefaultLimit is the result count used when the caller gives none.
	DefaultLimit = 20
	// MaxLimit is the Yelp API hard cap on results per request.
	MaxLimit = 50
	// MaxRadiusMeters is the Yelp API hard cap on search radius.
	MaxRadiusMeters = 40000
)

// SortBestMatch is the default sort order. The other values are passed
// through verbatim and left to the upstream API to accept or reject.
const SortBestMatch = "best_match"

// SearchCriteria configures one business search. Location is the only
// required field; zero values on the optional fields mean "not set"
// and are omitted from the outbound query entirely.
type SearchCriteria struct {
	Location   string // free-text address, city, or neighbourhood
	Term       string // optional keyword, e.g. "coffee"
	Categories string // optional comma-joined category aliases
	Price      string // optional comma-joined digits 1-4, e.g. "1,2"
	Radius     int    // optional meters, clamped to MaxRadiusMeters
	Limit      int    // defaults to DefaultLimit, clamped to MaxLimit
	SortBy     string // defaults to SortBestMatch, not validated locally
	OpenNow    *bool  // optional open-now filter
}

// Validate checks the caller-supplied criteria. Out-of-range Limit and
// Radius are NOT errors: they are clamped in queryValues so callers
// never see a hard failure for oversized values.
func (c SearchCriteria) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Location, validation.Required),
		validation.Field(&c.Radius, validation.Min(0)),
		validation.Field(&c.Limit, validation.Min(0)),
	)
	if err != nil {
		return domain.NewAPIError(domain.ErrValidation, fmt.Sprintf("invalid search criteria: %v", err), err)
	}
	return nil
}

// queryValues encodes the criteria as Yelp query parameters, applying
// the defaulting and clamping rules. Optional fields left unset do not
// appear in the query at all.
func (c SearchCriteria) queryValues() url.Values {
	limit := c.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortBy := c.SortBy
	if sortBy == "" {
		sortBy = SortBestMatch
	}

	params := url.Values{}
	params.Set("location", c.Location)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort_by", sortBy)

	if c.Term != "" {
		params.Set("term", c.Term)
	}
	if c.Categories != "" {
		params.Set("categories", c.Categories)
	}
	if c.Price != "" {
		params.Set("price", c.Price)
	}
	if c.Radius > 0 {
		radius := c.Radius
		if radius > MaxRadiusMeters {
			radius = MaxRadiusMeters
		}
		params.Set("radius", strconv.Itoa(radius))
	}
	if c.OpenNow != nil {
		params.Set("open_now", strconv.FormatBool(*c.OpenNow))
	}

	return params
}
