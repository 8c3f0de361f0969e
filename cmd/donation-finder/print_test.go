package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"donation_finder/internal/config"
	"donation_finder/internal/domain/entity"
	service "donation_finder/internal/domain/service/finder"
)

func samplePlaces() []entity.Place {
	return []entity.Place{
		{
			Name:             "Ballard Food Bank",
			Address:          "1400 NW Leary Way",
			Rating:           4.8,
			UserRatingsTotal: 120,
			DistanceKm:       2.5,
			Phone:            "+1 206-789-7800",
			Email:            "info@ballardfoodbank.org",
			Types:            []string{"food_bank", "charity", "establishment", "point_of_interest"},
			Reviews: []entity.Review{
				{AuthorName: "Sam", Rating: 5, Text: "Wonderful people", TimeDescription: "a week ago"},
			},
		},
	}
}

func TestPrintResultsDetailed(t *testing.T) {
	rq := require.New(t)

	var buf strings.Builder
	printResults(&buf, samplePlaces(), false, true)

	out := buf.String()
	rq.Contains(out, "Found 1 donation opportunities:")
	rq.Contains(out, "1. Ballard Food Bank")
	rq.Contains(out, "📍 1400 NW Leary Way")
	rq.Contains(out, "⭐ Rating: 4.8/5 (120 reviews)")
	rq.Contains(out, "📏 Distance: 2.5 km")
	rq.Contains(out, "📧 Email: info@ballardfoodbank.org")
	// Categories are capped at three.
	rq.Contains(out, "Categories: food_bank, charity, establishment")
	rq.NotContains(out, "point_of_interest")
	rq.Contains(out, "• Sam ⭐⭐⭐⭐⭐ a week ago")
	rq.Contains(out, `"Wonderful people"`)
}

func TestPrintResultsQuiet(t *testing.T) {
	rq := require.New(t)

	var buf strings.Builder
	printResults(&buf, samplePlaces(), true, false)

	rq.Contains(buf.String(), "1. Ballard Food Bank (2.5km) ⭐4.8 (120 reviews)")
}

func TestPrintResultsEmpty(t *testing.T) {
	var buf strings.Builder
	printResults(&buf, nil, false, false)

	require.Contains(t, buf.String(), "No donation opportunities found.")
}

func TestSearchKeywords(t *testing.T) {
	rq := require.New(t)

	defer func() { flags.keywords = "" }()

	flags.keywords = " food bank , charity ,"
	rq.Equal([]string{"food bank", "charity"}, searchKeywords(config.Config{}))

	flags.keywords = ""
	cfg := config.Config{File: config.FileConfig{Keywords: []string{"soup kitchen"}}}
	rq.Equal([]string{"soup kitchen"}, searchKeywords(cfg))

	rq.Equal(service.DefaultKeywords, searchKeywords(config.Config{}))
}
