package service

import (
	"context"

	"donation_finder/internal/domain/entity"
)

// EnrichOptions controls the per-place detail pass.
type EnrichOptions struct {
	MaxReviews int
	// IncludeAll fetches details for low-rated places too; otherwise places
	// rated below 3.0 are passed through untouched.
	IncludeAll bool
}

// Enrich fetches details, reviews and a best-effort contact email for each
// place. Failures are per-place: the original record is kept and the run
// continues. Details are cached in-process so batch runs do not re-fetch the
// same place.
func (s *FinderService) Enrich(ctx context.Context, places []entity.Place, opts EnrichOptions) []entity.Place {
	enriched := make([]entity.Place, 0, len(places))

	for i, place := range places {
		if ctx.Err() != nil {
			enriched = append(enriched, places[i:]...)
			break
		}

		logger(ctx).Info("enriching place",
			"index", i+1,
			"total", len(places),
			"name", place.Name,
		)

		if !opts.IncludeAll && place.Rating < reviewSkipThreshold {
			logger(ctx).Debug("skipping low-rated place", "name", place.Name, "rating", place.Rating)
			enriched = append(enriched, place)
			continue
		}

		if place.PlaceID == "" {
			logger(ctx).Warn("place has no provider id, skipping details", "name", place.Name)
			enriched = append(enriched, place)
			continue
		}

		details, err := s.placeDetails(ctx, place.PlaceID, opts.MaxReviews)
		if err != nil {
			logger(ctx).Error("details fetch failed", "place-id", place.PlaceID, "error", err)
			enriched = append(enriched, place)
			continue
		}

		place.Phone = details.Phone
		place.Website = details.Website
		place.BusinessStatus = details.BusinessStatus
		place.OpeningHours = details.OpeningHours
		place.PhotosAvailable = details.PhotosAvailable
		place.Reviews = details.Reviews
		if details.UserRatingsTotal > 0 {
			place.UserRatingsTotal = details.UserRatingsTotal
		}
		place.DetailsFetched = true

		if place.Website != "" && place.Email == "" {
			place.Email = s.scraper.ExtractEmail(ctx, place.Website)
		}

		enriched = append(enriched, place)
	}

	return enriched
}

func (s *FinderService) placeDetails(ctx context.Context, placeID string, maxReviews int) (*entity.PlaceDetails, error) {
	if cached, ok := s.detailsCache.Get(placeID); ok {
		return cached.(*entity.PlaceDetails), nil
	}

	details, err := s.places.PlaceDetails(ctx, placeID, maxReviews)
	if err != nil {
		return nil, err
	}

	s.detailsCache.SetDefault(placeID, details)

	return details, nil
}
