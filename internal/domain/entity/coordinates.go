package entity

import "math"

const earthRadiusMeters = 6371000

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// DistanceTo returns the great-circle distance to other in meters (haversine).
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	lat1 := c.Latitude * math.Pi / 180
	lon1 := c.Longitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	lon2 := other.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)

	return 2 * math.Asin(math.Sqrt(a)) * earthRadiusMeters
}
