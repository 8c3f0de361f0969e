package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"donation_finder/internal/domain/entity"
)

func TestDistanceTo(t *testing.T) {
	rq := require.New(t)

	seattle := entity.Coordinates{Latitude: 47.6062, Longitude: -122.3321}
	portland := entity.Coordinates{Latitude: 45.5152, Longitude: -122.6784}

	rq.Zero(seattle.DistanceTo(seattle))

	// One degree of latitude along a meridian.
	equator := entity.Coordinates{}
	oneNorth := entity.Coordinates{Latitude: 1}
	rq.InDelta(111195, equator.DistanceTo(oneNorth), 1)

	d := seattle.DistanceTo(portland)
	rq.InDelta(234000, d, 1500)
	rq.InDelta(d, portland.DistanceTo(seattle), 1e-6)
}

func TestIsZero(t *testing.T) {
	rq := require.New(t)

	rq.True(entity.Coordinates{}.IsZero())
	rq.False(entity.Coordinates{Latitude: 47.6062, Longitude: -122.3321}.IsZero())
}

func TestIdentityKey(t *testing.T) {
	rq := require.New(t)

	withID := entity.Place{PlaceID: "ChIJabc", Name: "Food Bank", Address: "1st Ave"}
	rq.Equal("ChIJabc", withID.IdentityKey())

	a := entity.Place{Name: "Food Bank", Address: "1st Ave"}
	b := entity.Place{Name: "FOOD BANK", Address: "1ST AVE"}
	rq.Equal(a.IdentityKey(), b.IdentityKey())

	c := entity.Place{Name: "Food Bank", Address: "2nd Ave"}
	rq.NotEqual(a.IdentityKey(), c.IdentityKey())
}
