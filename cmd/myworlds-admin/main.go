// Package main implements the maintenance CLI for My World's Pokémon.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/danilomoraisgustavo/myworlds/internal/app"
	"github.com/danilomoraisgustavo/myworlds/internal/config"
	"github.com/danilomoraisgustavo/myworlds/internal/content"
	"github.com/danilomoraisgustavo/myworlds/internal/maintenance"
	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug   bool
	timeout time.Duration

	// Generate flags
	genType       string
	genTopic      string
	genCategory   string
	genGeneration string
	genFormat     string

	// Fix-slugs flags
	dryRun bool

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "myworlds-admin",
	Short:         "Maintenance tasks for the My World's Pokémon backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		app.SetupLogging(debug || cfg.Debug)
		return nil
	},
}

// rotateCmd runs the article rotation once
var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Publish today's rotation articles now",
	Long: `Run the daily article rotation once, outside the scheduler.

Two categories are chosen from the current day, one article is generated
and published for each, and every fifth day the first one is featured.`,
	RunE: runRotate,
}

// generateCmd prints generated content
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate content and print it as JSON",
	Long: `Generate a post, guide or tournament without saving it.

Examples:
  myworlds-admin generate --topic "Como usar hazards" --category estrategias
  myworlds-admin generate --type guide --topic "Captura de lendários" --generation gen3
  myworlds-admin generate --type tournament --format doubles`,
	RunE: runGenerate,
}

// fixSlugsCmd repairs stored slugs
var fixSlugsCmd = &cobra.Command{
	Use:   "fix-slugs",
	Short: "Re-slugify stored slugs that are not URL-safe",
	RunE:  runFixSlugs,
}

func runRotate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close(context.Background())

	report, err := application.Rotator.Run(ctx)
	out := cmd.OutOrStdout()
	if report != nil {
		fmt.Fprintf(out, "Day %d, categories %v, featured day: %v\n", report.DayNumber, report.Categories, report.Featured)
		for _, o := range report.Outcomes {
			if o.Err != nil {
				fmt.Fprintf(out, "  ✗ %-13s %s: %v\n", o.Category, o.Topic, o.Err)
				continue
			}
			fmt.Fprintf(out, "  ✓ %-13s %s (%s)\n", o.Category, o.Article.Title, o.Article.Slug)
		}
	}
	return err
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req := content.Request{
		Type:       content.ContentType(genType),
		Topic:      genTopic,
		Category:   models.Category(genCategory),
		Generation: models.Generation(genGeneration),
		Format:     genFormat,
	}
	if req.Category != "" && !req.Category.Valid() {
		return fmt.Errorf("unknown category %q", genCategory)
	}
	if req.Generation != "" && !req.Generation.Valid() {
		return fmt.Errorf("unknown generation %q", genGeneration)
	}

	result, err := app.NewGenerator(cfg).Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result.Payload())
}

func runFixSlugs(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	fixes, err := maintenance.FixSlugs(ctx, store, dryRun)
	if err != nil {
		return err
	}

	failed := 0
	for _, f := range fixes {
		if f.Err != nil {
			failed++
		}
	}

	verb := "Fixed"
	if dryRun {
		verb = "Would fix"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s %d article slugs (%d failed)\n", verb, len(fixes)-failed, failed)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	generateCmd.Flags().StringVar(&genType, "type", string(content.TypePost), "Content type: post, guide or tournament")
	generateCmd.Flags().StringVar(&genTopic, "topic", "", "Topic (defaults per content type)")
	generateCmd.Flags().StringVar(&genCategory, "category", "", "Post category")
	generateCmd.Flags().StringVar(&genGeneration, "generation", "", "Game generation (gen1..gen9 or geral)")
	generateCmd.Flags().StringVar(&genFormat, "format", "", "Tournament battle format")

	fixSlugsCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only report the slugs that would change")

	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fixSlugsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
