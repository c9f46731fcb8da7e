package reputation

import (
	"fmt"
	"time"

	"ms-marketplace/internal/models"
)

type DBLayer interface {
	GetReputation(userID string) (*models.Reputation, error)
	UpsertReputationCAS(userID string, transform func(*models.Reputation) error) (*models.Reputation, error)
}

type UserGetter interface {
	GetUserByID(id string) (*models.User, error)
}

type KafkaPublisher interface {
	PublishRatingAdded(review models.Review, targetUserID string) error
	PublishUserVerified(userID string) error
}

type ReputationService struct {
	DB    DBLayer
	Users UserGetter
	Kafka KafkaPublisher
}

func NewReputationService(db DBLayer, users UserGetter, kafka KafkaPublisher) *ReputationService {
	return &ReputationService{DB: db, Users: users, Kafka: kafka}
}

// AddRating records one peer rating. A rater gets a single review per order:
// rating the same order again replaces the earlier review in place and does
// not bump the successful-order counter. Average, count and badges are
// recomputed from the full review list on every write.
func (s *ReputationService) AddRating(req models.RatingRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("rating %d out of range 1-5: %w", req.Rating, models.ErrValidation)
	}

	farmingMethod := s.lookupFarmingMethod(req.TargetUserID)
	review := models.Review{
		RaterID:   req.RaterID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Timestamp: time.Now().UnixMilli(),
	}

	_, err := s.DB.UpsertReputationCAS(req.TargetUserID, func(rep *models.Reputation) error {
		existing := -1
		for i, r := range rep.Reviews {
			if r.OrderID == req.OrderID && r.RaterID == req.RaterID {
				existing = i
				break
			}
		}

		if existing >= 0 {
			rep.Reviews[existing] = review
		} else {
			rep.Reviews = append(rep.Reviews, review)
			rep.SuccessfulOrders++
		}

		rep.TotalRatings = len(rep.Reviews)
		rep.Rating = meanRating(rep.Reviews)
		rep.Badges = ComputeBadges(rep, farmingMethod)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add rating for user %s: %w", req.TargetUserID, err)
	}

	if err := s.Kafka.PublishRatingAdded(review, req.TargetUserID); err != nil {
		fmt.Printf("Kafka publish error (rating added): %v\n", err)
	}

	return nil
}

// IncrementSuccessfulOrders bumps the delivery counter without touching
// ratings or reviews. Called by the order service on the edge into delivered.
func (s *ReputationService) IncrementSuccessfulOrders(userID string) error {
	_, err := s.DB.UpsertReputationCAS(userID, func(rep *models.Reputation) error {
		rep.SuccessfulOrders++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment successful orders for user %s: %w", userID, err)
	}
	return nil
}

// VerifyUser sets the legacy verified flag and adds the Verified badge if it
// is missing. Unlike AddRating this does not recompute the other badges; the
// two paths have always behaved asymmetrically and listing code relies on
// the existing badge list surviving.
func (s *ReputationService) VerifyUser(userID string) error {
	_, err := s.DB.UpsertReputationCAS(userID, func(rep *models.Reputation) error {
		rep.VerifiedStatus = true
		for _, b := range rep.Badges {
			if b == models.BadgeVerified {
				return nil
			}
		}
		rep.Badges = append(rep.Badges, models.BadgeVerified)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to verify user %s: %w", userID, err)
	}

	if err := s.Kafka.PublishUserVerified(userID); err != nil {
		fmt.Printf("Kafka publish error (user verified): %v\n", err)
	}

	return nil
}

// GetUserReputation returns the aggregate, or ErrNotFound if the user has
// never been rated or verified.
func (s *ReputationService) GetUserReputation(userID string) (*models.Reputation, error) {
	return s.DB.GetReputation(userID)
}

func (s *ReputationService) lookupFarmingMethod(userID string) models.FarmingMethod {
	user, err := s.Users.GetUserByID(userID)
	if err != nil {
		// Badge decoration only, a missing profile never blocks a rating
		return ""
	}
	return user.FarmingMethod
}

func meanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
