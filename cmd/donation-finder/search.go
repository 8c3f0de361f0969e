package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"donation_finder/internal/config"
	"donation_finder/internal/domain/entity"
	service "donation_finder/internal/domain/service/finder"
	"donation_finder/internal/infrastructure/mail"
	"donation_finder/internal/infrastructure/output"
	"donation_finder/internal/infrastructure/places"
	"donation_finder/internal/infrastructure/scrape"
	"donation_finder/internal/infrastructure/zipcode"
	"donation_finder/internal/worker"
	"donation_finder/pkg/contextx"
	"donation_finder/pkg/logx"
)

const zipTableFile = "zip_coordinates.json"

type searchFlags struct {
	zip      string
	zipBatch bool
	lat      float64
	lng      float64

	keywords   string
	radius     int
	maxResults int
	minRating  float64

	includeReviews bool
	maxReviews     int
	reviewsForAll  bool

	output string
	format string
	email  bool
	quiet  bool
}

var flags searchFlags //nolint:gochecknoglobals

var rootCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "donation-finder",
	Short: "Find donation opportunities through the Google Places API",
	Long: `Searches for donation opportunities (charities, food banks, shelters, ...)
around a ZIP code or coordinate pair, optionally enriches the results with
contact details and reviews, writes them to JSON/CSV and can email a report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSearch,
}

func init() { //nolint:gochecknoinits
	f := rootCmd.Flags()

	f.StringVar(&flags.zip, "zip", "", "search by ZIP code")
	f.BoolVar(&flags.zipBatch, "zip-batch", false, "search the ZIP codes listed in config.json")
	f.Float64Var(&flags.lat, "lat", 0, "latitude for coordinate search (requires --lng)")
	f.Float64Var(&flags.lng, "lng", 0, "longitude for coordinate search (requires --lat)")
	rootCmd.MarkFlagsMutuallyExclusive("zip", "zip-batch", "lat")

	f.StringVar(&flags.keywords, "keywords", "", "comma-separated search keywords (default: built-in donation keyword set)")
	f.IntVar(&flags.radius, "radius", 5000, "search radius in meters")
	f.IntVar(&flags.maxResults, "max-results", 20, "maximum results to return")
	f.Float64Var(&flags.minRating, "min-rating", 0, "skip places rated below this")

	f.BoolVar(&flags.includeReviews, "include-reviews", false, "fetch details and reviews per place (slower)")
	f.IntVar(&flags.maxReviews, "max-reviews", 3, "reviews per place with --include-reviews")
	f.BoolVar(&flags.reviewsForAll, "reviews-for-all", false, "fetch reviews for low-rated places too")

	f.StringVar(&flags.output, "output", "donation_opportunities", "output filename base, without extension")
	f.StringVar(&flags.format, "format", "both", "output format: json, csv or both")
	f.BoolVar(&flags.email, "email", false, "email the report to the configured recipient")
	f.BoolVar(&flags.quiet, "quiet", false, "compact console output")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if flags.zip == "" && !flags.zipBatch && !cmd.Flags().Changed("lat") {
		return fmt.Errorf("one of --zip, --zip-batch or --lat/--lng is required")
	}
	if cmd.Flags().Changed("lat") != cmd.Flags().Changed("lng") {
		return fmt.Errorf("--lat and --lng must be used together")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if cfg.Places.APIKey == "" {
		return fmt.Errorf("Google Places API key not found, set GOOGLE_PLACES_API_KEY or GOOGLE_MAPS_API_KEY")
	}

	format, err := output.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	client := places.NewClient(cfg.Places)
	finder := service.NewFinderService(client, scrape.NewEmailScraper(cfg.Places.ScrapeDelay))

	table, err := zipcode.Load(ctx, zipTableFile)
	if err != nil {
		return fmt.Errorf("zipcode.Load: %w", err)
	}

	scanner := worker.NewZipScanner(finder, table)
	scanner.SetZipCodes(cfg.File.ZipCodes.EnabledZipCodes)

	req := entity.SearchRequest{
		Keywords:     searchKeywords(cfg),
		RadiusMeters: flags.radius,
		MaxResults:   flags.maxResults,
		MinRating:    flags.minRating,
	}

	var (
		found []entity.Place
		info  entity.SearchInfo
		base  string
	)

	switch {
	case flags.zip != "":
		found, err = scanner.SearchZip(ctx, flags.zip, req)
		info = entity.SearchInfo{
			Type:     "ZIP Code Search",
			Location: "ZIP " + flags.zip,
			Keywords: req.Keywords,
		}
		base = fmt.Sprintf("%s_%s", flags.output, flags.zip)

	case flags.zipBatch:
		zips := scanner.ZipCodes()

		var result *worker.BatchResult
		result, err = scanner.Run(ctx, req, flags.output, format)
		if result != nil {
			found = result.Merged
		}
		info = entity.SearchInfo{
			Type:     "Batch ZIP Code Search",
			Location: fmt.Sprintf("%d ZIP codes: %s", len(zips), strings.Join(zips, ", ")),
			Keywords: req.Keywords,
		}
		base = flags.output + "_batch"

	default:
		req.Origin = entity.Coordinates{Latitude: flags.lat, Longitude: flags.lng}
		req.SortByDistance = true

		found, err = finder.Find(ctx, req)
		info = entity.SearchInfo{
			Type:     "Coordinates Search",
			Location: fmt.Sprintf("Lat: %v, Lng: %v", flags.lat, flags.lng),
			Keywords: req.Keywords,
		}
		base = flags.output + "_coordinates"
	}

	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if flags.includeReviews && len(found) > 0 {
		found = finder.Enrich(ctx, found, service.EnrichOptions{
			MaxReviews: flags.maxReviews,
			IncludeAll: flags.reviewsForAll,
		})
	}

	contextx.LoggerFromContextOrDefault(ctx).Info("search done",
		logx.FieldCount, len(found),
		logx.FieldAPICalls, client.TotalAPICalls(),
	)

	printResults(cmd.OutOrStdout(), found, flags.quiet, flags.includeReviews)

	saved, err := output.Write(ctx, found, base, format)
	if err != nil {
		return fmt.Errorf("output.Write: %w", err)
	}

	if flags.email {
		sendReport(ctx, cfg, found, info, saved)
	}

	return nil
}

// searchKeywords resolves the keyword set: the flag wins over the config.json
// override, which wins over the built-in defaults.
func searchKeywords(cfg config.Config) []string {
	if flags.keywords != "" {
		parts := strings.Split(flags.keywords, ",")
		keywords := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
		return keywords
	}

	if len(cfg.File.Keywords) > 0 {
		return cfg.File.Keywords
	}

	return service.DefaultKeywords
}

// sendReport is best effort: unconfigured or failing email never fails the
// search that produced the results.
func sendReport(ctx context.Context, cfg config.Config, found []entity.Place, info entity.SearchInfo, saved []string) {
	log := contextx.LoggerFromContextOrDefault(ctx)

	sender := mail.NewSender(cfg.Mail, cfg.File.EmailSettings)
	if !sender.IsConfigured() {
		log.Info("email not configured, skipping delivery")
		return
	}

	if err := sender.SendResults(ctx, found, info, saved); err != nil {
		log.Error("email delivery failed", logx.Error(err))
	}
}
