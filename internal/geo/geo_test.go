package geo_test

import (
	"testing"

	"ms-marketplace/internal/geo"
	"ms-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_KnownValue(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km
	a := models.GeoPoint{Latitude: 0, Longitude: 0}
	b := models.GeoPoint{Latitude: 0, Longitude: 1}

	distance := geo.DistanceKm(a, b)
	assert.InDelta(t, 111.19, distance, 0.5)
}

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := [][2]models.GeoPoint{
		{{Latitude: 12.97, Longitude: 77.59}, {Latitude: 13.08, Longitude: 80.27}},
		{{Latitude: -33.87, Longitude: 151.21}, {Latitude: 51.51, Longitude: -0.13}},
		{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 180}},
	}

	for _, pair := range pairs {
		assert.InDelta(t, geo.DistanceKm(pair[0], pair[1]), geo.DistanceKm(pair[1], pair[0]), 1e-9)
	}
}

func TestDistanceKm_SamePoint(t *testing.T) {
	p := models.GeoPoint{Latitude: 28.61, Longitude: 77.21}
	assert.Equal(t, 0.0, geo.DistanceKm(p, p))
}

func TestFindNearbyFarmers_FiltersAndSorts(t *testing.T) {
	origin := models.GeoPoint{Latitude: 0, Longitude: 0}

	farNorth := models.GeoPoint{Latitude: 2, Longitude: 0}       // ~222 km
	near := models.GeoPoint{Latitude: 0.1, Longitude: 0}         // ~11 km
	mid := models.GeoPoint{Latitude: 0.5, Longitude: 0}          // ~55 km

	candidates := []models.User{
		{ID: "farmer-far", Role: models.RoleFarmer, Location: &farNorth},
		{ID: "vendor-near", Role: models.RoleVendor, Location: &near},
		{ID: "farmer-mid", Role: models.RoleFarmer, Location: &mid},
		{ID: "farmer-no-location", Role: models.RoleFarmer},
		{ID: "farmer-near", Role: models.RoleFarmer, Location: &near},
	}

	result := geo.FindNearbyFarmers(origin, 100, candidates)

	assert.Len(t, result, 2)
	assert.Equal(t, "farmer-near", result[0].User.ID)
	assert.Equal(t, "farmer-mid", result[1].User.ID)
	assert.Less(t, result[0].DistanceKm, result[1].DistanceKm)
}

func TestFindNearbyFarmers_InclusiveBoundary(t *testing.T) {
	origin := models.GeoPoint{Latitude: 0, Longitude: 0}
	point := models.GeoPoint{Latitude: 0, Longitude: 1}

	candidates := []models.User{
		{ID: "farmer-edge", Role: models.RoleFarmer, Location: &point},
	}

	exact := geo.DistanceKm(origin, point)
	result := geo.FindNearbyFarmers(origin, exact, candidates)
	assert.Len(t, result, 1, "boundary distance should be included")

	result = geo.FindNearbyFarmers(origin, exact-0.01, candidates)
	assert.Empty(t, result)
}

func TestFindNearbyFarmers_StableTieOrder(t *testing.T) {
	origin := models.GeoPoint{Latitude: 0, Longitude: 0}
	same := models.GeoPoint{Latitude: 0.2, Longitude: 0}

	candidates := []models.User{
		{ID: "first", Role: models.RoleFarmer, Location: &same},
		{ID: "second", Role: models.RoleFarmer, Location: &same},
		{ID: "third", Role: models.RoleFarmer, Location: &same},
	}

	result := geo.FindNearbyFarmers(origin, 50, candidates)
	assert.Len(t, result, 3)
	assert.Equal(t, "first", result[0].User.ID)
	assert.Equal(t, "second", result[1].User.ID)
	assert.Equal(t, "third", result[2].User.ID)
}

func TestFindNearbyFarmers_NoCandidates(t *testing.T) {
	origin := models.GeoPoint{Latitude: 0, Longitude: 0}
	result := geo.FindNearbyFarmers(origin, 50, nil)
	assert.Empty(t, result)
}
