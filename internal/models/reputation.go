package models

import (
	"github.com/uptrace/bun"
)

// Badge names derived from reputation thresholds and farming method.
const (
	BadgeVerified          = "Verified"
	BadgeTopRated          = "Top Rated"
	BadgeHighlyRated       = "Highly Rated"
	BadgeExperiencedSeller = "Experienced Seller"
	BadgeEstablishedSeller = "Established Seller"
	BadgeTrustedSeller     = "Trusted Seller"
	BadgeOrganicFarmer     = "Organic Farmer"
	BadgeNaturalFarming    = "Natural Farming"
)

// Review is one peer rating for an order. A rater may leave at most one
// review per order; re-submitting replaces the earlier one in place.
type Review struct {
	RaterID   string `json:"rater_id"`
	OrderID   string `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Reputation is the per-user aggregate derived from reviews. Rating and
// TotalRatings are recomputed from Reviews on every write; SuccessfulOrders
// is a monotonic counter. VerifiedStatus is the legacy mirror of the
// verification record and is kept for backward compatibility only.
type Reputation struct {
	bun.BaseModel `bun:"table:reputations"`

	UserID           string   `bun:"user_id,pk" json:"user_id"`
	Rating           float64  `bun:"rating" json:"rating"`
	TotalRatings     int      `bun:"total_ratings" json:"total_ratings"`
	SuccessfulOrders int      `bun:"successful_orders" json:"successful_orders"`
	VerifiedStatus   bool     `bun:"verified_status" json:"verified_status"`
	Badges           []string `bun:"badges,type:jsonb" json:"badges"`
	Reviews          []Review `bun:"reviews,type:jsonb" json:"reviews"`
	Version          int64    `bun:"version,notnull,default:0" json:"-"`
}

// NewReputation returns the zero-value aggregate created lazily on a user's
// first rating or verification event.
func NewReputation(userID string) *Reputation {
	return &Reputation{
		UserID:  userID,
		Badges:  []string{},
		Reviews: []Review{},
	}
}

type RatingRequest struct {
	RaterID      string `json:"rater_id"`
	TargetUserID string `json:"target_user_id"`
	OrderID      string `json:"order_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
}
