package places

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"donation_finder/internal/domain"
	"donation_finder/internal/domain/entity"
	"donation_finder/pkg/errcodes"
)

const businessStatusPrefix = "BUSINESS_STATUS_"

// SearchText issues one text-search query biased to a circle around origin.
func (c *Client) SearchText(ctx context.Context, query string, origin entity.Coordinates, radiusMeters int) ([]entity.Place, error) {
	if err := c.waitSearchSlot(ctx); err != nil {
		return nil, err
	}

	reqBody := searchTextRequest{
		TextQuery:      query,
		MaxResultCount: maxResultCount,
	}
	if !origin.IsZero() {
		reqBody.LocationBias = &locationBias{
			Circle: circle{
				Center: latLng{Latitude: origin.Latitude, Longitude: origin.Longitude},
				Radius: float64(radiusMeters),
			},
		}
	}

	var resp searchTextResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/places:searchText", "", reqBody, &resp); err != nil {
		return nil, err
	}

	found := make([]entity.Place, 0, len(resp.Places))
	for _, raw := range resp.Places {
		// A record without coordinates cannot be distance-checked.
		if raw.Location == nil {
			continue
		}
		found = append(found, toPlace(raw))
	}

	return found, nil
}

// PlaceDetails fetches the extended record for one place, including up to
// maxReviews reviews.
func (c *Client) PlaceDetails(ctx context.Context, placeID string, maxReviews int) (*entity.PlaceDetails, error) {
	if err := c.waitDetailsSlot(ctx); err != nil {
		return nil, err
	}

	var resp placeDetailsResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/places/"+placeID, detailsFieldMask, nil, &resp); err != nil {
		return nil, err
	}

	return toPlaceDetails(placeID, resp, maxReviews), nil
}

func (c *Client) do(ctx context.Context, method, url, fieldMask string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if fieldMask != "" {
		req.Header.Set("X-Goog-FieldMask", fieldMask)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(respBytes, &apiErr); err == nil && apiErr.Error.Message != "" {
			return domain.NewError(errcodes.PlacesAPIError,
				fmt.Sprintf("places api %s: %s", apiErr.Error.Status, apiErr.Error.Message))
		}
		return domain.NewError(errcodes.PlacesAPIError,
			fmt.Sprintf("places api status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}

func toPlace(raw placeResult) entity.Place {
	return entity.Place{
		Name:              raw.DisplayName.Text,
		Address:           raw.FormattedAddress,
		PlaceID:           raw.ID,
		Latitude:          raw.Location.Latitude,
		Longitude:         raw.Location.Longitude,
		Rating:            raw.Rating,
		UserRatingsTotal:  raw.UserRatingCount,
		BusinessStatus:    strings.TrimPrefix(raw.BusinessStatus, businessStatusPrefix),
		Types:             raw.Types,
		PriceLevel:        raw.PriceLevel,
		PermanentlyClosed: isPermanentlyClosed(raw.BusinessStatus),
	}
}

func toPlaceDetails(placeID string, raw placeDetailsResponse, maxReviews int) *entity.PlaceDetails {
	details := &entity.PlaceDetails{
		PlaceID:          placeID,
		Name:             raw.DisplayName.Text,
		Address:          raw.FormattedAddress,
		Rating:           raw.Rating,
		UserRatingsTotal: raw.UserRatingCount,
		Phone:            raw.InternationalPhoneNumber,
		Website:          raw.WebsiteURI,
		BusinessStatus:   strings.TrimPrefix(raw.BusinessStatus, businessStatusPrefix),
		PhotosAvailable:  len(raw.Photos),
	}
	if raw.ID != "" {
		details.PlaceID = raw.ID
	}
	if raw.RegularOpeningHours != nil {
		details.OpeningHours = raw.RegularOpeningHours.WeekdayDescriptions
	}

	reviews := raw.Reviews
	if maxReviews > 0 && len(reviews) > maxReviews {
		reviews = reviews[:maxReviews]
	}
	for _, review := range reviews {
		details.Reviews = append(details.Reviews, entity.Review{
			AuthorName:      authorNameOrAnonymous(review.AuthorAttribution.DisplayName),
			AuthorPhoto:     review.AuthorAttribution.PhotoURI,
			Rating:          review.Rating,
			Text:            review.Text.Text,
			TimeDescription: review.RelativePublishTimeDescription,
			PublishTime:     review.PublishTime,
		})
	}

	return details
}

func authorNameOrAnonymous(name string) string {
	if name == "" {
		return "Anonymous"
	}
	return name
}

func isPermanentlyClosed(status string) bool {
	return status == "BUSINESS_STATUS_PERMANENTLY_CLOSED" || status == "CLOSED_PERMANENTLY"
}
