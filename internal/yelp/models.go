package yelp

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// HoursTypeRegular is the default hours type reported by the Yelp API.
const HoursTypeRegular = "REGULAR"

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location holds the decomposed address of a business. All fields are
// optional; DisplayAddress carries the source-formatted display lines.
type Location struct {
	Address1       string   `json:"address1,omitempty"`
	Address2       string   `json:"address2,omitempty"`
	Address3       string   `json:"address3,omitempty"`
	City           string   `json:"city,omitempty"`
	ZipCode        string   `json:"zip_code,omitempty"`
	Country        string   `json:"country,omitempty"`
	State          string   `json:"state,omitempty"`
	DisplayAddress []string `json:"display_address"`
}

// AddressString joins the display address lines with ", ".
// An empty display address yields an empty string.
func (l Location) AddressString() string {
	return strings.Join(l.DisplayAddress, ", ")
}

// Category is a stable machine alias plus a human-readable title.
// Order within a business reflects relevance as returned by the source.
type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// Validate checks the structural requirements of a category.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Alias, validation.Required),
		validation.Field(&c.Title, validation.Required),
	)
}

// OpenSlot is one contiguous opening interval. Start and End are kept
// in the source's 24-hour "HHMM" string form because intervals may
// cross midnight (IsOvernight), which a clock type cannot express.
type OpenSlot struct {
	IsOvernight bool   `json:"is_overnight"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Day         int    `json:"day"` // 0=Monday .. 6=Sunday
}

// BusinessHours is an ordered set of opening slots plus the source's
// "open right now" snapshot, computed upstream at request time.
type BusinessHours struct {
	Open      []OpenSlot `json:"open"`
	HoursType string     `json:"hours_type"`
	IsOpenNow bool       `json:"is_open_now"`
}

// UnmarshalJSON applies the REGULAR default when hours_type is absent.
func (h *BusinessHours) UnmarshalJSON(data []byte) error {
	type alias BusinessHours
	tmp := alias{HoursType: HoursTypeRegular}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*h = BusinessHours(tmp)
	return nil
}

// Attributes holds optional flags and links describing a business.
// Absence of the whole object (nil on Business) is distinct from an
// object whose fields are all null.
type Attributes struct {
	BusinessTempClosed  *bool   `json:"business_temp_closed,omitempty"`
	MenuURL             *string `json:"menu_url,omitempty"`
	Open24Hours         *bool   `json:"open24_hours,omitempty"`
	WaitlistReservation *bool   `json:"waitlist_reservation,omitempty"`
}

// Business is a single search result from the Yelp API.
type Business struct {
	ID            string          `json:"id"`
	Alias         string          `json:"alias"`
	Name          string          `json:"name"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsClosed      bool            `json:"is_closed"`
	URL           string          `json:"url"`
	ReviewCount   int             `json:"review_count"`
	Categories    []Category      `json:"categories"`
	Rating        float64         `json:"rating"`
	Coordinates   *Coordinates    `json:"coordinates"`
	Transactions  []string        `json:"transactions"`
	Price         string          `json:"price,omitempty"`
	Location      Location        `json:"location"`
	Phone         string          `json:"phone,omitempty"`
	DisplayPhone  string          `json:"display_phone,omitempty"`
	Distance      *float64        `json:"distance,omitempty"`
	BusinessHours []BusinessHours `json:"business_hours,omitempty"`
	Attributes    *Attributes     `json:"attributes,omitempty"`
}

// Validate checks the structural requirements and invariants of a
// decoded business. Required fields missing from the source payload
// are a validation failure rather than a silent default.
func (b Business) Validate() error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.ID, validation.Required),
		validation.Field(&b.Alias, validation.Required),
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.URL, validation.Required),
		validation.Field(&b.Coordinates, validation.NotNil),
		validation.Field(&b.Rating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&b.ReviewCount, validation.Min(0)),
		validation.Field(&b.Distance, validation.Min(0.0)),
		validation.Field(&b.Price, validation.By(validatePriceTier)),
	)
	if err != nil {
		return err
	}

	for i, cat := range b.Categories {
		if err := cat.Validate(); err != nil {
			return fmt.Errorf("category %d: %w", i, err)
		}
	}
	return nil
}

// validatePriceTier checks that a present price string is 1-4
// repetitions of a single currency symbol. Empty means unknown and is
// always valid.
func validatePriceTier(value interface{}) error {
	price, _ := value.(string)
	if price == "" {
		return nil
	}

	runes := []rune(price)
	if len(runes) > 4 {
		return fmt.Errorf("price tier has %d symbols, maximum is 4", len(runes))
	}
	for _, r := range runes {
		if r != runes[0] {
			return fmt.Errorf("price tier must repeat a single symbol, got %q", price)
		}
	}
	return nil
}

// PriceLevel returns the numeric price tier (1-4), or 0 when the
// source reported no price. Zero means unknown, never "free".
func (b Business) PriceLevel() int {
	return len([]rune(b.Price))
}

// CategoriesString joins category titles with ", " in source order.
func (b Business) CategoriesString() string {
	titles := make([]string, len(b.Categories))
	for i, cat := range b.Categories {
		titles[i] = cat.Title
	}
	return strings.Join(titles, ", ")
}

// AddressString returns the formatted display address.
func (b Business) AddressString() string {
	return b.Location.AddressString()
}

// IsOpenNow reports the source's open-right-now snapshot from the
// first (canonical) hours entry. With no hours data it returns false:
// unknown is deliberately treated as closed. That is a policy choice,
// not an upstream guarantee.
func (b Business) IsOpenNow() bool {
	if len(b.BusinessHours) == 0 {
		return false
	}
	return b.BusinessHours[0].IsOpenNow
}

// MenuURL returns the menu link, or "" when the attributes object or
// the link itself is absent.
func (b Business) MenuURL() string {
	if b.Attributes == nil || b.Attributes.MenuURL == nil {
		return ""
	}
	return *b.Attributes.MenuURL
}

// Region describes the search area as resolved by the source.
type Region struct {
	Center Coordinates `json:"center"`
}

// SearchResponse is the top-level result of a business search.
// Businesses keeps the source's relevance/sort order and is never
// re-sorted locally. Total may exceed len(Businesses): pagination is
// server-side, and an empty page with Total > 0 is a valid response.
type SearchResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
	Region     *Region    `json:"region,omitempty"`
}

// Validate checks every decoded business and the response invariants.
func (r SearchResponse) Validate() error {
	if r.Total < 0 {
		return fmt.Errorf("total must not be negative, got %d", r.Total)
	}
	for i, b := range r.Businesses {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("business %d (%s): %w", i, b.ID, err)
		}
	}
	return nil
}
