package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"donation_finder/internal/domain/entity"
	"donation_finder/pkg/contextx"
	"donation_finder/pkg/lox"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatBoth Format = "both"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatBoth, "":
		return FormatBoth, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, csv or both)", s)
	}
}

var csvHeader = []string{ //nolint:gochecknoglobals
	"name",
	"address",
	"place_id",
	"latitude",
	"longitude",
	"rating",
	"user_ratings_total",
	"business_status",
	"types",
	"distance_meters",
	"distance_km",
	"phone",
	"website",
	"email",
	"review_count",
}

// Write serializes places to <base>.json and/or <base>.csv and returns the
// files written.
func Write(ctx context.Context, places []entity.Place, base string, format Format) ([]string, error) {
	if len(places) == 0 {
		logger(ctx).Info("no results to save")
		return nil, nil
	}

	var saved []string

	if format == FormatJSON || format == FormatBoth {
		file := base + ".json"
		if err := writeJSON(places, file); err != nil {
			return saved, fmt.Errorf("writeJSON: %w", err)
		}

		logger(ctx).Info("results saved", "file", file)
		saved = append(saved, file)
	}

	if format == FormatCSV || format == FormatBoth {
		file := base + ".csv"
		if err := writeCSV(places, file); err != nil {
			return saved, fmt.Errorf("writeCSV: %w", err)
		}

		logger(ctx).Info("results saved", "file", file)
		saved = append(saved, file)
	}

	return saved, nil
}

func writeJSON(places []entity.Place, file string) error {
	data, err := json.MarshalIndent(places, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}

func writeCSV(places []entity.Place, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	rows := lox.Map(places, csvRow)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv.Write header: %w", err)
	}

	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv.WriteAll: %w", err)
	}

	return nil
}

func csvRow(p entity.Place) []string {
	return []string{
		p.Name,
		p.Address,
		p.PlaceID,
		formatFloat(p.Latitude),
		formatFloat(p.Longitude),
		formatFloat(p.Rating),
		strconv.Itoa(p.UserRatingsTotal),
		p.BusinessStatus,
		strings.Join(p.Types, ";"),
		formatFloat(p.DistanceMeters),
		formatFloat(p.DistanceKm),
		p.Phone,
		p.Website,
		p.Email,
		strconv.Itoa(len(p.Reviews)),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
