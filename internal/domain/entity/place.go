package entity

import "strings"

type Place struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	PlaceID           string   `json:"place_id"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	Rating            float64  `json:"rating,omitempty"`
	UserRatingsTotal  int      `json:"user_ratings_total,omitempty"`
	BusinessStatus    string   `json:"business_status,omitempty"`
	Types             []string `json:"types,omitempty"`
	PriceLevel        string   `json:"price_level,omitempty"`
	DistanceMeters    float64  `json:"distance_meters"`
	DistanceKm        float64  `json:"distance_km"`
	PermanentlyClosed bool     `json:"permanently_closed"`

	// Filled by the detail enricher.
	Phone           string   `json:"phone,omitempty"`
	Website         string   `json:"website,omitempty"`
	Email           string   `json:"email,omitempty"`
	OpeningHours    []string `json:"opening_hours,omitempty"`
	PhotosAvailable int      `json:"photos_available,omitempty"`
	Reviews         []Review `json:"reviews,omitempty"`
	DetailsFetched  bool     `json:"detailed_info_fetched"`
}

func (p Place) Location() Coordinates {
	return Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}

// IdentityKey deduplicates across keyword queries: the provider id when
// present, otherwise normalized name+address.
func (p Place) IdentityKey() string {
	if p.PlaceID != "" {
		return p.PlaceID
	}

	return strings.ToLower(p.Name) + "|" + strings.ToLower(p.Address)
}
