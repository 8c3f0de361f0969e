package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"donation_finder/internal/domain/entity"
	service "donation_finder/internal/domain/service/finder"
	"donation_finder/internal/infrastructure/output"
	"donation_finder/internal/infrastructure/zipcode"
)

type fakePlaces struct {
	mu      sync.Mutex
	queries []string
	origins []entity.Coordinates
	radii   []int

	perQuery int
}

func (f *fakePlaces) SearchText(_ context.Context, query string, origin entity.Coordinates, radius int) ([]entity.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, query)
	f.origins = append(f.origins, origin)
	f.radii = append(f.radii, radius)

	if strings.Contains(query, "00000") {
		return nil, fmt.Errorf("quota exceeded")
	}

	count := f.perQuery
	if count == 0 {
		count = 1
	}

	places := make([]entity.Place, 0, count)
	for i := 0; i < count; i++ {
		places = append(places, entity.Place{
			Name:      fmt.Sprintf("%s #%d", query, i+1),
			PlaceID:   fmt.Sprintf("p-%.4f-%d", origin.Latitude, i),
			Latitude:  origin.Latitude,
			Longitude: origin.Longitude,
			Rating:    4.5,
		})
	}

	return places, nil
}

func (f *fakePlaces) PlaceDetails(context.Context, string, int) (*entity.PlaceDetails, error) {
	return nil, fmt.Errorf("not used")
}

type noScraper struct{}

func (noScraper) ExtractEmail(context.Context, string) string { return "" }

func testTable(t *testing.T) *zipcode.Table {
	t.Helper()

	path := filepath.Join(t.TempDir(), "zip_coordinates.json")
	data := `{
		"98101": {"lat": 47.6101, "lng": -122.3344, "city": "Seattle", "state": "WA"},
		"98109": {"lat": 47.6344, "lng": -122.3422, "city": "Seattle", "state": "WA"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	table, err := zipcode.Load(context.Background(), path)
	require.NoError(t, err)

	return table
}

func newTestScanner(t *testing.T) (*ZipScanner, *fakePlaces) {
	t.Helper()

	places := &fakePlaces{}
	finder := service.NewFinderService(places, noScraper{})

	return NewZipScanner(finder, testTable(t)), places
}

func TestSearchZipResolved(t *testing.T) {
	rq := require.New(t)

	scanner, places := newTestScanner(t)

	found, err := scanner.SearchZip(context.Background(), "98101", entity.SearchRequest{
		Keywords:     []string{"food bank"},
		RadiusMeters: 5000,
		MaxResults:   10,
	})
	rq.NoError(err)
	rq.Len(found, 1)

	rq.Equal([]string{"food bank"}, places.queries)
	rq.InDelta(47.6101, places.origins[0].Latitude, 1e-9)
	rq.InDelta(-122.3344, places.origins[0].Longitude, 1e-9)
	rq.Equal(5000, places.radii[0])
}

func TestSearchZipFallback(t *testing.T) {
	rq := require.New(t)

	scanner, places := newTestScanner(t)

	found, err := scanner.SearchZip(context.Background(), "10001", entity.SearchRequest{
		Keywords:     []string{"food bank", "charity", "shelter"},
		RadiusMeters: 5000,
		MaxResults:   10,
	})
	rq.NoError(err)

	// The keyword expansion is capped, so only the first two keywords survive.
	rq.Equal([]string{
		"food bank in 10001",
		"food bank near 10001",
		"food bank 10001",
		"charity in 10001",
		"charity near 10001",
		"charity 10001",
	}, places.queries)

	for _, origin := range places.origins {
		rq.Equal(zipcode.FallbackOrigin, origin)
	}
	for _, radius := range places.radii {
		rq.Equal(10000, radius)
	}

	// One unique place per distinct query name, deduplicated by place id.
	rq.Len(found, 1)
}

func TestRunBatch(t *testing.T) {
	rq := require.New(t)

	scanner, places := newTestScanner(t)
	places.perQuery = 3
	scanner.SetZipCodes([]string{"98101", "98109"})

	dir := t.TempDir()
	base := filepath.Join(dir, "donation_opportunities")

	result, err := scanner.Run(context.Background(), entity.SearchRequest{
		Keywords:     []string{"food bank"},
		RadiusMeters: 5000,
		MaxResults:   4,
	}, base, output.FormatJSON)
	rq.NoError(err)

	// Cap of 4 splits into 2 per ZIP.
	rq.Len(result.PerZip["98101"], 2)
	rq.Len(result.PerZip["98109"], 2)
	rq.Len(result.Merged, 4)

	rq.Equal([]string{base + "_98101.json", base + "_98109.json"}, result.Files)
	for _, file := range result.Files {
		_, err := os.Stat(file)
		rq.NoError(err)
	}
}

func TestRunBatchSkipsFailedZip(t *testing.T) {
	rq := require.New(t)

	scanner, _ := newTestScanner(t)
	scanner.SetZipCodes([]string{"98101", "00000"})

	result, err := scanner.Run(context.Background(), entity.SearchRequest{
		Keywords:     []string{"food bank"},
		RadiusMeters: 5000,
		MaxResults:   10,
	}, "", output.FormatJSON)
	rq.NoError(err)

	rq.Len(result.PerZip["98101"], 1)
	rq.Empty(result.PerZip["00000"])
	rq.Len(result.Merged, 1)
	rq.Empty(result.Files)
}

func TestRunBatchNoZipCodes(t *testing.T) {
	scanner, _ := newTestScanner(t)

	_, err := scanner.Run(context.Background(), entity.SearchRequest{}, "", output.FormatJSON)
	require.Error(t, err)
}

func TestZipCodeList(t *testing.T) {
	rq := require.New(t)

	scanner, _ := newTestScanner(t)

	scanner.AddZipCodes("98101", "98109", "98101")
	rq.Equal([]string{"98101", "98109"}, scanner.ZipCodes())

	scanner.RemoveZipCode("98101")
	rq.Equal([]string{"98109"}, scanner.ZipCodes())

	scanner.SetZipCodes(nil)
	rq.Nil(scanner.ZipCodes())
}
