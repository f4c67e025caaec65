package agent

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// GenerationProfile holds the sampling settings for one agent.
type GenerationProfile struct {
	Temperature       float64 `yaml:"temperature"`
	TopP              float64 `yaml:"top_p"`
	MaxTokens         int     `yaml:"max_tokens"`
	MaxToolIterations int     `yaml:"max_tool_iterations"`
}

// Profiles carries the per-agent generation profiles.
type Profiles struct {
	Search         GenerationProfile `yaml:"search"`
	Recommendation GenerationProfile `yaml:"recommendation"`
}

// LoadProfiles parses the embedded profiles file.
func LoadProfiles() (*Profiles, error) {
	data, err := configFiles.ReadFile("config/profiles.yaml")
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	var profiles Profiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("unmarshal profiles: %w", err)
	}

	if profiles.Search.MaxTokens <= 0 || profiles.Recommendation.MaxTokens <= 0 {
		return nil, fmt.Errorf("profiles must set positive max_tokens")
	}
	if profiles.Search.MaxToolIterations <= 0 {
		return nil, fmt.Errorf("search profile must allow at least one tool iteration")
	}

	return &profiles, nil
}
