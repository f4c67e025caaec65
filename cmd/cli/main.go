package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/joho/godotenv"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/agent"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/config"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/tools"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/yelp"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const maxLogFiles = 10

type cli struct {
	runner  *agent.Runner
	scanner *bufio.Scanner
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%s❌ Error: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	// Keep the console clean; debug logs go to a file.
	logFile, err := config.SetupLogFile("logs", maxLogFiles)
	if err != nil {
		fmt.Printf("%s❌ Failed to create log file: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))

	profiles, err := agent.LoadProfiles()
	if err != nil {
		fmt.Printf("%s❌ Failed to load profiles: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	searchTool := tools.NewSearchBusinessesTool(
		func() tools.SearchClient {
			return yelp.NewClient(cfg.YelpAPIKey, logger)
		},
		tools.DefaultConfig(),
		logger,
	)

	registry := tools.NewRegistry()
	registry.Register(tools.SearchBusinessesToolName, searchTool)

	anthropicClient := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	searchAgent := agent.NewSearchAgent(&anthropicClient, registry, cfg.Model, profiles.Search, logger)
	recommendationAgent := agent.NewRecommendationAgent(&anthropicClient, cfg.Model, profiles.Recommendation, logger)

	app := &cli{
		runner:  agent.NewRunner(searchAgent, recommendationAgent, logger),
		scanner: bufio.NewScanner(os.Stdin),
	}

	app.run(cfg.Model)
}

func (c *cli) run(model string) {
	fmt.Printf("\n%s╔══════════════════════════════════════╗%s\n", colorCyan, colorReset)
	fmt.Printf("%s║      Venue Recommendation Agent      ║%s\n", colorCyan, colorReset)
	fmt.Printf("%s╚══════════════════════════════════════╝%s\n", colorCyan, colorReset)
	fmt.Printf("%sModel: %s%s\n", colorBlue, model, colorReset)
	fmt.Println(`Describe what you're looking for, e.g. "cheap sushi near Soho, London".`)
	fmt.Println(`Type "exit" to quit.`)

	for {
		fmt.Printf("\n%s> %s", colorGreen, colorReset)
		if !c.scanner.Scan() {
			fmt.Println()
			return
		}

		query := strings.TrimSpace(c.scanner.Text())
		switch {
		case query == "":
			continue
		case strings.EqualFold(query, "exit"), strings.EqualFold(query, "quit"):
			fmt.Printf("%s✓ Goodbye!%s\n", colorGreen, colorReset)
			return
		}

		c.recommend(query)
	}
}

func (c *cli) recommend(query string) {
	fmt.Printf("\n%s⏳ Searching and analysing venues...%s\n", colorBlue, colorReset)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := c.runner.Run(ctx, query)
	if err != nil {
		fmt.Printf("%s❌ Error: %v%s\n", colorRed, err, colorReset)
		return
	}

	fmt.Printf("\n%s=== Search Results ===%s\n\n%s\n", colorCyan, colorReset, result.SearchReport)
	fmt.Printf("\n%s=== Recommendations ===%s\n\n%s\n", colorCyan, colorReset, result.Recommendation)
	fmt.Printf("\n%s✓ Done in %.1fs (run %s)%s\n",
		colorGreen, result.Elapsed.Seconds(), result.RunID, colorReset)

	if result.Elapsed > 2*time.Minute {
		fmt.Printf("%s⚠ That took a while, consider a narrower search%s\n", colorYellow, colorReset)
	}
}
