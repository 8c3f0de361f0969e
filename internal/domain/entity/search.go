package entity

import "strings"

type SearchRequest struct {
	Origin         Coordinates
	Keywords       []string
	RadiusMeters   int
	MaxResults     int
	MinRating      float64
	SortByDistance bool
}

// PlaceDetails is the extended record returned by the per-place details call.
type PlaceDetails struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Address          string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Phone            string   `json:"phone"`
	Website          string   `json:"website"`
	BusinessStatus   string   `json:"business_status"`
	OpeningHours     []string `json:"opening_hours"`
	PhotosAvailable  int      `json:"photos_available"`
	Reviews          []Review `json:"reviews"`
}

// SearchInfo describes a finished search for reports and email subjects.
type SearchInfo struct {
	Type     string
	Location string
	Keywords []string
}

func (i SearchInfo) KeywordsLine() string {
	return strings.Join(i.Keywords, ", ")
}
