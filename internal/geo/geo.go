package geo

import (
	"math"
	"sort"

	"ms-marketplace/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometers using the Haversine formula.
func DistanceKm(a, b models.GeoPoint) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLon := deg2rad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// FindNearbyFarmers filters candidates down to farmers with a known location
// within radiusKm of origin (inclusive) and returns them sorted by distance,
// nearest first. Ties keep the candidates' input order.
func FindNearbyFarmers(origin models.GeoPoint, radiusKm float64, candidates []models.User) []models.UserWithDistance {
	nearby := []models.UserWithDistance{}

	for _, user := range candidates {
		if user.Role != models.RoleFarmer {
			continue
		}
		if user.Location == nil {
			continue
		}

		distance := DistanceKm(origin, *user.Location)
		if distance <= radiusKm {
			nearby = append(nearby, models.UserWithDistance{
				User:       user,
				DistanceKm: distance,
			})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby
}
