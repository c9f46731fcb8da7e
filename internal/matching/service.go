package matching

import (
	"errors"
	"fmt"
	"sort"

	"ms-marketplace/internal/geo"
	"ms-marketplace/internal/models"
)

type UserStore interface {
	GetUsersByRole(role models.UserRole) ([]models.User, error)
}

type ReputationReader interface {
	GetReputation(userID string) (*models.Reputation, error)
}

// MatchingService pairs buyers with farmers: proximity search over farmer
// locations and a rating leaderboard.
type MatchingService struct {
	Users      UserStore
	Reputation ReputationReader
}

func NewMatchingService(users UserStore, reputation ReputationReader) *MatchingService {
	return &MatchingService{Users: users, Reputation: reputation}
}

// NearbyFarmers returns farmers within radiusKm of origin, nearest first.
func (s *MatchingService) NearbyFarmers(origin models.GeoPoint, radiusKm float64) ([]models.UserWithDistance, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("radius %.2f km: %w", radiusKm, models.ErrValidation)
	}

	candidates, err := s.Users.GetUsersByRole(models.RoleFarmer)
	if err != nil {
		return nil, fmt.Errorf("failed to load farmers: %w", err)
	}

	return geo.FindNearbyFarmers(origin, radiusKm, candidates), nil
}

// FarmerWithRating is a leaderboard entry.
type FarmerWithRating struct {
	User         models.User `json:"user"`
	Rating       float64     `json:"rating"`
	TotalRatings int         `json:"total_ratings"`
}

// TopRatedFarmers returns up to limit farmers ordered by average rating,
// highest first. Farmers with no reputation yet rank as zero.
func (s *MatchingService) TopRatedFarmers(limit int) ([]FarmerWithRating, error) {
	if limit <= 0 {
		limit = 10
	}

	farmers, err := s.Users.GetUsersByRole(models.RoleFarmer)
	if err != nil {
		return nil, fmt.Errorf("failed to load farmers: %w", err)
	}

	rated := make([]FarmerWithRating, 0, len(farmers))
	for _, farmer := range farmers {
		entry := FarmerWithRating{User: farmer}

		rep, err := s.Reputation.GetReputation(farmer.ID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		if rep != nil {
			entry.Rating = rep.Rating
			entry.TotalRatings = rep.TotalRatings
		}
		rated = append(rated, entry)
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})

	if len(rated) > limit {
		rated = rated[:limit]
	}
	return rated, nil
}
