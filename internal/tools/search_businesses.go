package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/yelp"
)

// SearchBusinessesToolName is the name the tool is registered under.
const SearchBusinessesToolName = "search_businesses"

const metersPerMile = 1609.34

// SearchClient is the slice of the Yelp client the tool needs.
// The client's connection is scoped: one Open/Close pair per call.
type SearchClient interface {
	Open()
	Close()
	Search(ctx context.Context, criteria yelp.SearchCriteria) (*yelp.SearchResponse, error)
}

// SearchBusinessesTool implements the 'search_businesses' tool over
// the Yelp search client. This is the outermost tool boundary: it
// never returns a Go error for domain or unexpected failures - every
// failure is converted to an error payload so the caller always
// receives a well-formed result object.
type SearchBusinessesTool struct {
	newClient func() SearchClient
	config    *Config
	logger    *slog.Logger
}

// NewSearchBusinessesTool creates the tool. newClient is called once
// per execution so each call owns its own scoped connection.
func NewSearchBusinessesTool(newClient func() SearchClient, config *Config, logger *slog.Logger) *SearchBusinessesTool {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchBusinessesTool{
		newClient: newClient,
		config:    config,
		logger:    logger,
	}
}

// BusinessPayload is one flattened business in the tool response.
type BusinessPayload struct {
	ID             string   `json:"id"`
	Alias          string   `json:"alias"`
	Name           string   `json:"name"`
	ImageURL       string   `json:"image_url,omitempty"`
	IsClosed       bool     `json:"is_closed"`
	URL            string   `json:"url"`
	ReviewCount    int      `json:"review_count"`
	Rating         float64  `json:"rating"`
	Transactions   []string `json:"transactions,omitempty"`
	Price          string   `json:"price"`
	DistanceMeters *float64 `json:"distance_meters"`
	DistanceMiles  *float64 `json:"distance_miles"`
	Categories     string   `json:"categories"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	OpenNow        bool     `json:"open_now"`
	MenuURL        string   `json:"menu_url,omitempty"`
}

// SearchPayload is the tool response shape. Success and failure share
// it; failure is signalled by a non-empty Error field, never by a
// raised error.
type SearchPayload struct {
	Businesses []BusinessPayload `json:"businesses"`
	Total      int               `json:"total"`
	Count      int               `json:"count"`
	Summary    string            `json:"summary"`
	Error      string            `json:"error,omitempty"`
}

// Execute implements the Executor interface.
// Input parameters mirror the Yelp search criteria:
//   - location (string, required)
//   - term, categories, price, sort_by (string, optional)
//   - radius, limit (integer, optional; clamped, never rejected)
//   - open_now (boolean, optional)
func (t *SearchBusinessesTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	criteria := t.criteriaFromInput(input)

	client := t.newClient()
	client.Open()
	defer client.Close()

	response, err := client.Search(ctx, criteria)
	if err != nil {
		t.logger.Error("business search failed",
			"location", criteria.Location,
			"error", err,
		)
		return errorPayload(err), nil
	}

	return t.successPayload(response), nil
}

// criteriaFromInput coerces the loosely-typed tool input into search
// criteria. JSON numbers arrive as float64.
func (t *SearchBusinessesTool) criteriaFromInput(input map[string]interface{}) yelp.SearchCriteria {
	criteria := yelp.SearchCriteria{
		Location:   stringParam(input, "location"),
		Term:       stringParam(input, "term"),
		Categories: stringParam(input, "categories"),
		Price:      stringParam(input, "price"),
		SortBy:     stringParam(input, "sort_by"),
		Limit:      t.config.SearchDefaultLimit,
	}

	if limit, ok := intParam(input, "limit"); ok && limit > 0 {
		if limit > t.config.SearchMaxLimit {
			limit = t.config.SearchMaxLimit
		}
		criteria.Limit = limit
	}
	if radius, ok := intParam(input, "radius"); ok && radius > 0 {
		if radius > t.config.SearchMaxRadius {
			radius = t.config.SearchMaxRadius
		}
		criteria.Radius = radius
	}
	if openNow, ok := input["open_now"].(bool); ok {
		criteria.OpenNow = &openNow
	}

	return criteria
}

func (t *SearchBusinessesTool) successPayload(response *yelp.SearchResponse) *SearchPayload {
	businesses := make([]BusinessPayload, len(response.Businesses))
	for i, b := range response.Businesses {
		businesses[i] = flattenBusiness(b)
	}

	summary := fmt.Sprintf("Found %d businesses", len(businesses))
	if len(businesses) > 0 {
		var sum float64
		for _, b := range businesses {
			sum += b.Rating
		}
		summary += fmt.Sprintf(" (average rating: %.1f)", sum/float64(len(businesses)))
	}

	return &SearchPayload{
		Businesses: businesses,
		Total:      response.Total,
		Count:      len(businesses),
		Summary:    summary,
	}
}

func flattenBusiness(b yelp.Business) BusinessPayload {
	payload := BusinessPayload{
		ID:           b.ID,
		Alias:        b.Alias,
		Name:         b.Name,
		ImageURL:     b.ImageURL,
		IsClosed:     b.IsClosed,
		URL:          b.URL,
		ReviewCount:  b.ReviewCount,
		Rating:       b.Rating,
		Transactions: b.Transactions,
		Price:        b.Price,
		Categories:   b.CategoriesString(),
		Address:      b.AddressString(),
		Phone:        b.DisplayPhone,
		OpenNow:      b.IsOpenNow(),
		MenuURL:      b.MenuURL(),
	}

	if payload.Price == "" {
		payload.Price = "N/A"
	}
	if payload.Phone == "" {
		payload.Phone = b.Phone
	}
	if payload.Phone == "" {
		payload.Phone = "N/A"
	}

	if b.Distance != nil {
		meters := round2(*b.Distance)
		miles := round2(*b.Distance / metersPerMile)
		payload.DistanceMeters = &meters
		payload.DistanceMiles = &miles
	}

	return payload
}

// errorPayload converts any failure into the well-formed error shape.
// Both taxonomy members and unexpected errors land here - nothing
// crosses this boundary unconverted.
func errorPayload(err error) *SearchPayload {
	msg := err.Error()
	prefix := "Error"
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		prefix = "Unexpected error"
	}
	return &SearchPayload{
		Businesses: []BusinessPayload{},
		Summary:    fmt.Sprintf("%s: %s", prefix, msg),
		Error:      msg,
	}
}

func stringParam(input map[string]interface{}, key string) string {
	value, _ := input[key].(string)
	return strings.TrimSpace(value)
}

func intParam(input map[string]interface{}, key string) (int, bool) {
	switch v := input[key].(type) {
	case float64:
		return int(math.Round(v)), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
