package tools

// Config centralizes tool-level defaults and caps so they are not
// scattered through tool implementations.
type Config struct {
	SearchDefaultLimit int // default number of businesses per search
	SearchMaxLimit     int // hard cap on businesses per search
	SearchMaxRadius    int // hard cap on search radius in meters
}

// DefaultConfig returns the default tool configuration, aligned with
// the Yelp API limits.
func DefaultConfig() *Config {
	return &Config{
		SearchDefaultLimit: 20,
		SearchMaxLimit:     50,
		SearchMaxRadius:    40000,
	}
}
