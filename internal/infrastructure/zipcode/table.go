package zipcode

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"donation_finder/internal/domain"
	"donation_finder/internal/domain/entity"
	"donation_finder/pkg/contextx"
	"donation_finder/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// FallbackOrigin is used for the text-search fallback when a ZIP code is not
// in the table (downtown Seattle).
var FallbackOrigin = entity.Coordinates{Latitude: 47.6062, Longitude: -122.3321} //nolint:gochecknoglobals

const maxFallbackKeywords = 6

type Entry struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	City  string  `json:"city"`
	State string  `json:"state"`
}

func (e Entry) Coordinates() entity.Coordinates {
	return entity.Coordinates{Latitude: e.Lat, Longitude: e.Lng}
}

// Table is the read-only ZIP code to coordinate mapping.
type Table struct {
	entries map[string]Entry
}

// Load reads the table file. A missing file is non-fatal: every lookup will
// miss and callers take the text-search fallback.
func Load(ctx context.Context, path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger(ctx).Warn("zip coordinate table not found, falling back to text search", "file", path)
			return &Table{entries: map[string]Entry{}}, nil
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	entries := map[string]Entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal %s: %w", path, err)
	}

	return &Table{entries: entries}, nil
}

func (t *Table) Lookup(zip string) (Entry, error) {
	entry, ok := t.entries[zip]
	if !ok {
		return Entry{}, domain.NewError(errcodes.ZipCodeNotFound, fmt.Sprintf("zip code %s not in table", zip))
	}

	return entry, nil
}

func (t *Table) Len() int {
	return len(t.entries)
}

// FallbackKeywords expands each keyword with the ZIP code so a plain text
// search still targets the right area, capped to keep the call count down.
func FallbackKeywords(keywords []string, zip string) []string {
	expanded := make([]string, 0, len(keywords)*3)
	for _, keyword := range keywords {
		expanded = append(expanded,
			fmt.Sprintf("%s in %s", keyword, zip),
			fmt.Sprintf("%s near %s", keyword, zip),
			fmt.Sprintf("%s %s", keyword, zip),
		)
	}

	if len(expanded) > maxFallbackKeywords {
		expanded = expanded[:maxFallbackKeywords]
	}

	return expanded
}
