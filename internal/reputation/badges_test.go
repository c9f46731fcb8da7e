package reputation

import (
	"testing"

	"ms-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeBadges_RatingTiers(t *testing.T) {
	tests := []struct {
		name     string
		rating   float64
		count    int
		expected []string
	}{
		{"top rated at 4.5 with 10 ratings", 4.5, 10, []string{models.BadgeTopRated}},
		{"highly rated when volume too low for top", 4.8, 9, []string{models.BadgeHighlyRated}},
		{"highly rated at 4.0 with 5 ratings", 4.0, 5, []string{models.BadgeHighlyRated}},
		{"no rating badge below 4.0", 3.9, 100, []string{}},
		{"no rating badge below 5 ratings", 5.0, 4, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &models.Reputation{Rating: tt.rating, TotalRatings: tt.count}
			assert.Equal(t, tt.expected, ComputeBadges(rep, ""))
		})
	}
}

func TestComputeBadges_VolumeTiers(t *testing.T) {
	tests := []struct {
		orders   int
		expected []string
	}{
		{4, []string{}},
		{5, []string{models.BadgeTrustedSeller}},
		{19, []string{models.BadgeTrustedSeller}},
		{20, []string{models.BadgeEstablishedSeller}},
		{49, []string{models.BadgeEstablishedSeller}},
		{50, []string{models.BadgeExperiencedSeller}},
		{500, []string{models.BadgeExperiencedSeller}},
	}

	for _, tt := range tests {
		rep := &models.Reputation{SuccessfulOrders: tt.orders}
		assert.Equal(t, tt.expected, ComputeBadges(rep, ""), "orders=%d", tt.orders)
	}
}

func TestComputeBadges_CategoriesStack(t *testing.T) {
	rep := &models.Reputation{
		Rating:           4.7,
		TotalRatings:     25,
		SuccessfulOrders: 30,
		VerifiedStatus:   true,
	}

	badges := ComputeBadges(rep, models.FarmingOrganic)

	assert.Equal(t, []string{
		models.BadgeVerified,
		models.BadgeTopRated,
		models.BadgeEstablishedSeller,
		models.BadgeOrganicFarmer,
	}, badges)
}

func TestComputeBadges_FarmingMethod(t *testing.T) {
	rep := &models.Reputation{}

	assert.Equal(t, []string{models.BadgeOrganicFarmer}, ComputeBadges(rep, models.FarmingOrganic))
	assert.Equal(t, []string{models.BadgeNaturalFarming}, ComputeBadges(rep, models.FarmingNatural))
	assert.Equal(t, []string{}, ComputeBadges(rep, ""))
}

func TestComputeBadges_NilReputation(t *testing.T) {
	assert.Equal(t, []string{}, ComputeBadges(nil, models.FarmingOrganic))
}
