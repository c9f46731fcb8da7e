package reputation

import (
	"ms-marketplace/internal/models"
)

// ComputeBadges derives the full badge set from an aggregate. Within the
// rating and volume categories only the highest tier applies; categories
// themselves stack. Callers replace the stored badge list wholesale with the
// result, except VerifyUser which stays additive.
func ComputeBadges(rep *models.Reputation, farmingMethod models.FarmingMethod) []string {
	badges := []string{}
	if rep == nil {
		return badges
	}

	if rep.VerifiedStatus {
		badges = append(badges, models.BadgeVerified)
	}

	if rep.Rating >= 4.5 && rep.TotalRatings >= 10 {
		badges = append(badges, models.BadgeTopRated)
	} else if rep.Rating >= 4.0 && rep.TotalRatings >= 5 {
		badges = append(badges, models.BadgeHighlyRated)
	}

	if rep.SuccessfulOrders >= 50 {
		badges = append(badges, models.BadgeExperiencedSeller)
	} else if rep.SuccessfulOrders >= 20 {
		badges = append(badges, models.BadgeEstablishedSeller)
	} else if rep.SuccessfulOrders >= 5 {
		badges = append(badges, models.BadgeTrustedSeller)
	}

	if farmingMethod == models.FarmingOrganic {
		badges = append(badges, models.BadgeOrganicFarmer)
	} else if farmingMethod == models.FarmingNatural {
		badges = append(badges, models.BadgeNaturalFarming)
	}

	return badges
}
