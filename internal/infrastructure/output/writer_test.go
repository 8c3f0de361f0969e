package output_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"donation_finder/internal/domain/entity"
	"donation_finder/internal/infrastructure/output"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

func testPlaces() []entity.Place {
	return []entity.Place{
		{
			Name:           "Ballard Food Bank",
			Address:        "1400 NW Leary Way, Seattle",
			PlaceID:        "p1",
			Latitude:       47.664,
			Longitude:      -122.363,
			Rating:         4.8,
			Types:          []string{"food_bank", "point_of_interest"},
			DistanceMeters: 1234.56,
			DistanceKm:     1.23,
			Email:          "info@ballardfoodbank.org",
			Reviews:        []entity.Review{{AuthorName: "Sam", Rating: 5, Text: "Great"}},
		},
		{
			Name:    "Union Gospel Mission",
			Address: "318 2nd Ave Ext S, Seattle",
			PlaceID: "p2",
		},
	}
}

func TestParseFormat(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		input    string
		expected output.Format
		wantErr  bool
	}{
		{input: "json", expected: output.FormatJSON},
		{input: "CSV", expected: output.FormatCSV},
		{input: "both", expected: output.FormatBoth},
		{input: "", expected: output.FormatBoth},
		{input: "xml", wantErr: true},
	}

	for _, tc := range testCases {
		format, err := output.ParseFormat(tc.input)
		if tc.wantErr {
			rq.Error(err)
			continue
		}
		rq.NoError(err)
		rq.Equal(tc.expected, format)
	}
}

func TestWriteBoth(t *testing.T) {
	rq := require.New(t)

	base := filepath.Join(t.TempDir(), "donation_opportunities_98101")

	saved, err := output.Write(context.Background(), testPlaces(), base, output.FormatBoth)
	rq.NoError(err)
	rq.Equal([]string{base + ".json", base + ".csv"}, saved)

	// JSON round-trips to the same records.
	data, err := os.ReadFile(base + ".json")
	rq.NoError(err)

	var decoded []entity.Place
	rq.NoError(json.Unmarshal(data, &decoded))
	rq.Len(decoded, 2)
	rq.Equal("Ballard Food Bank", decoded[0].Name)
	rq.Equal("info@ballardfoodbank.org", decoded[0].Email)

	// CSV has a header plus one row per place.
	f, err := os.Open(base + ".csv")
	rq.NoError(err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	rq.NoError(err)
	rq.Len(rows, 3)
	rq.Equal("name", rows[0][0])
	rq.Equal("Ballard Food Bank", rows[1][0])
	rq.Equal("food_bank;point_of_interest", rows[1][8])
	rq.Equal("1", rows[1][14])
	rq.Equal("Union Gospel Mission", rows[2][0])
}

func TestWriteSingleFormatAndEmpty(t *testing.T) {
	rq := require.New(t)

	dir := t.TempDir()

	saved, err := output.Write(context.Background(), testPlaces(), filepath.Join(dir, "out"), output.FormatJSON)
	rq.NoError(err)
	rq.Len(saved, 1)
	rq.FileExists(filepath.Join(dir, "out.json"))
	rq.NoFileExists(filepath.Join(dir, "out.csv"))

	saved, err = output.Write(context.Background(), nil, filepath.Join(dir, "empty"), output.FormatBoth)
	rq.NoError(err)
	rq.Empty(saved)
	rq.NoFileExists(filepath.Join(dir, "empty.json"))
}
