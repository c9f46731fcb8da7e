package verification

import (
	"errors"
	"fmt"
	"time"

	"ms-marketplace/internal/models"

	"github.com/google/uuid"
)

type DBLayer interface {
	GetVerificationRecord(userID string) (*models.VerificationRecord, error)
	UpsertVerificationRecord(record models.VerificationRecord) error
	CreateVerificationRequest(req models.VerificationRequest) error
	GetVerificationRequest(id string) (*models.VerificationRequest, error)
	GetVerificationRequestsByUser(userID string) ([]models.VerificationRequest, error)
	UpdateVerificationRequest(req models.VerificationRequest) error
}

type ReputationReader interface {
	GetReputation(userID string) (*models.Reputation, error)
}

type ReputationVerifier interface {
	VerifyUser(userID string) error
}

type VerificationService struct {
	DB         DBLayer
	Reputation ReputationReader
	Verifier   ReputationVerifier
}

func NewVerificationService(db DBLayer, reputation ReputationReader, verifier ReputationVerifier) *VerificationService {
	return &VerificationService{DB: db, Reputation: reputation, Verifier: verifier}
}

// ResolveSellerVerified resolves a seller's trust status. The verification
// record is authoritative; the legacy flag on the reputation aggregate is
// consulted only when no record exists. Any read failure resolves to false -
// listing display must never block on a trust lookup.
func (s *VerificationService) ResolveSellerVerified(userID string) bool {
	record, err := s.DB.GetVerificationRecord(userID)
	if err == nil {
		return record.Status == models.VerificationVerified
	}
	if !errors.Is(err, models.ErrNotFound) {
		return false
	}

	rep, err := s.Reputation.GetReputation(userID)
	if err != nil {
		return false
	}
	return rep.VerifiedStatus
}

// SubmitVerificationRequest files a new request and flips the user's record
// to pending with a pointer to the request.
func (s *VerificationService) SubmitVerificationRequest(userID string, role models.UserRole, fullName, phoneNumber string) (string, error) {
	if fullName == "" || phoneNumber == "" {
		return "", fmt.Errorf("verification request needs full name and phone number: %w", models.ErrValidation)
	}

	now := time.Now()
	request := models.VerificationRequest{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserRole:    role,
		Status:      models.VerificationPending,
		FullName:    fullName,
		PhoneNumber: phoneNumber,
		SubmittedAt: now,
	}

	if err := s.DB.CreateVerificationRequest(request); err != nil {
		return "", fmt.Errorf("failed to save verification request: %w", err)
	}

	err := s.DB.UpsertVerificationRecord(models.VerificationRecord{
		UserID:          userID,
		Status:          models.VerificationPending,
		LastRequestID:   request.ID,
		LastRequestDate: &now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to update verification record: %w", err)
	}

	return request.ID, nil
}

// GetVerificationStatus returns the user's record, defaulting to unverified
// when the user has never submitted a request.
func (s *VerificationService) GetVerificationStatus(userID string) (*models.VerificationRecord, error) {
	record, err := s.DB.GetVerificationRecord(userID)
	if errors.Is(err, models.ErrNotFound) {
		return &models.VerificationRecord{
			UserID: userID,
			Status: models.VerificationUnverified,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *VerificationService) GetVerificationRequest(id string) (*models.VerificationRequest, error) {
	return s.DB.GetVerificationRequest(id)
}

func (s *VerificationService) GetUserVerificationRequests(userID string) ([]models.VerificationRequest, error) {
	return s.DB.GetVerificationRequestsByUser(userID)
}

// ApproveVerification marks the request verified, promotes the user's record
// and mirrors the result into the legacy reputation flag.
func (s *VerificationService) ApproveVerification(requestID, reviewerID string) error {
	request, err := s.DB.GetVerificationRequest(requestID)
	if err != nil {
		return err
	}

	now := time.Now()
	request.Status = models.VerificationVerified
	request.ReviewedAt = &now
	request.ReviewedBy = reviewerID
	if err := s.DB.UpdateVerificationRequest(*request); err != nil {
		return fmt.Errorf("failed to update verification request: %w", err)
	}

	err = s.DB.UpsertVerificationRecord(models.VerificationRecord{
		UserID:          request.UserID,
		Status:          models.VerificationVerified,
		LastRequestID:   request.ID,
		LastRequestDate: &request.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update verification record: %w", err)
	}

	if err := s.Verifier.VerifyUser(request.UserID); err != nil {
		return fmt.Errorf("failed to mirror verification into reputation: %w", err)
	}

	return nil
}

// RejectVerification marks the request rejected with the reviewer's reason
// and drops the user's record back to unverified.
func (s *VerificationService) RejectVerification(requestID, reviewerID, reason string) error {
	request, err := s.DB.GetVerificationRequest(requestID)
	if err != nil {
		return err
	}

	now := time.Now()
	request.Status = models.VerificationRejected
	request.ReviewedAt = &now
	request.ReviewedBy = reviewerID
	request.RejectionReason = reason
	if err := s.DB.UpdateVerificationRequest(*request); err != nil {
		return fmt.Errorf("failed to update verification request: %w", err)
	}

	err = s.DB.UpsertVerificationRecord(models.VerificationRecord{
		UserID:          request.UserID,
		Status:          models.VerificationUnverified,
		LastRequestID:   request.ID,
		LastRequestDate: &request.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update verification record: %w", err)
	}

	return nil
}

// HasEnoughSuccessfulOrders reports whether the user qualifies for the
// order-history verification shortcut (five delivered orders).
func (s *VerificationService) HasEnoughSuccessfulOrders(userID string) (bool, error) {
	rep, err := s.Reputation.GetReputation(userID)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rep.SuccessfulOrders >= 5, nil
}
