package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"donation_finder/internal/domain/entity"
	"donation_finder/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	detailsCacheTTL     = time.Hour
	reviewSkipThreshold = 3.0
)

// DefaultKeywords is the search set used when the caller provides none.
var DefaultKeywords = []string{ //nolint:gochecknoglobals
	"charity near me",
	"NGO near me",
	"food bank near me",
	"shelter near me",
	"orphanage near me",
	"donation center near me",
	"blood bank near me",
	"homeless shelter near me",
	"soup kitchen near me",
	"community center near me",
	"nonprofit organization near me",
	"animal shelter near me",
	"salvation army near me",
	"red cross near me",
}

type PlacesClient interface {
	SearchText(ctx context.Context, query string, origin entity.Coordinates, radiusMeters int) ([]entity.Place, error)
	PlaceDetails(ctx context.Context, placeID string, maxReviews int) (*entity.PlaceDetails, error)
}

type EmailScraper interface {
	ExtractEmail(ctx context.Context, websiteURL string) string
}

type FinderService struct {
	places       PlacesClient
	scraper      EmailScraper
	detailsCache *cache.Cache
}

func NewFinderService(places PlacesClient, scraper EmailScraper) *FinderService {
	return &FinderService{
		places:       places,
		scraper:      scraper,
		detailsCache: cache.New(detailsCacheTTL, detailsCacheTTL),
	}
}

// Find runs one search per keyword, shapes the candidates against the origin
// and returns the deduplicated, distance-sorted, capped result list. A failed
// keyword is logged and skipped.
func (s *FinderService) Find(ctx context.Context, req entity.SearchRequest) ([]entity.Place, error) {
	if len(req.Keywords) == 0 {
		req.Keywords = DefaultKeywords
	}

	var all []entity.Place

	for _, keyword := range req.Keywords {
		found, err := s.searchKeyword(ctx, keyword, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			logger(ctx).Error("keyword search failed", "keyword", keyword, "error", err)
			continue
		}

		logger(ctx).Info("keyword search done", "keyword", keyword, "count", len(found))
		all = append(all, found...)
	}

	unique := lo.UniqBy(all, entity.Place.IdentityKey)

	active := lo.Filter(unique, func(p entity.Place, _ int) bool {
		return !p.PermanentlyClosed
	})

	if req.SortByDistance {
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].DistanceMeters < active[j].DistanceMeters
		})
	}

	if req.MaxResults > 0 && len(active) > req.MaxResults {
		active = active[:req.MaxResults]
	}

	logger(ctx).Info("search finished",
		"total", len(all),
		"unique", len(unique),
		"returned", len(active),
	)

	return active, nil
}

func (s *FinderService) searchKeyword(ctx context.Context, keyword string, req entity.SearchRequest) ([]entity.Place, error) {
	found, err := s.places.SearchText(ctx, keyword, req.Origin, req.RadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("places.SearchText: %w", err)
	}

	shaped := make([]entity.Place, 0, len(found))

	for _, place := range found {
		place.DistanceMeters = math.Round(req.Origin.DistanceTo(place.Location())*100) / 100
		place.DistanceKm = math.Round(place.DistanceMeters/10) / 100

		// The location bias is only a bias: re-check the radius client-side.
		if req.RadiusMeters > 0 && place.DistanceMeters > float64(req.RadiusMeters) {
			continue
		}

		if place.Rating < req.MinRating {
			continue
		}

		shaped = append(shaped, place)
	}

	return shaped, nil
}
