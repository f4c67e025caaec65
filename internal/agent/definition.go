package agent

import (
	"github.com/anthropics/anthropic-sdk-go"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/tools"
)

// searchToolParam exposes the search_businesses tool schema to the
// model. The parameter names and limits mirror the Yelp criteria.
func searchToolParam() anthropic.ToolParam {
	return anthropic.ToolParam{
		Name: tools.SearchBusinessesToolName,
		Description: anthropic.String("Search for restaurants, cafés, bars, and other venues on Yelp. " +
			"Returns businesses with name, rating, reviews, price, distance, address, phone, and more."),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: map[string]interface{}{
				"location": map[string]interface{}{
					"type":        "string",
					"description": `City, address, or neighborhood (e.g., "London", "Shoreditch, London")`,
				},
				"term": map[string]interface{}{
					"type":        "string",
					"description": `Search term (e.g., "restaurants", "coffee", "italian food")`,
				},
				"categories": map[string]interface{}{
					"type":        "string",
					"description": "Comma-separated Yelp category aliases",
				},
				"price": map[string]interface{}{
					"type":        "string",
					"description": `Price levels "1,2,3,4" where 1=£, 2=££, 3=£££, 4=££££`,
				},
				"radius": map[string]interface{}{
					"type":        "integer",
					"description": "Search radius in meters (max 40000)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to return (default 20, max 50)",
				},
				"sort_by": map[string]interface{}{
					"type":        "string",
					"description": `Sort order: "best_match", "rating", "review_count", or "distance"`,
				},
				"open_now": map[string]interface{}{
					"type":        "boolean",
					"description": "Filter to only currently open businesses",
				},
			},
			Required: []string{"location"},
		},
	}
}
