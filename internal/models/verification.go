package models

import (
	"time"

	"github.com/uptrace/bun"
)

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	// VerificationRejected applies to requests only; a rejected user's record
	// drops back to unverified.
	VerificationRejected VerificationStatus = "rejected"
)

// VerificationRecord is the authoritative trust flag for a user, one per
// user and independent of the reputation aggregate.
type VerificationRecord struct {
	bun.BaseModel `bun:"table:verification_records"`

	UserID          string             `bun:"user_id,pk" json:"user_id"`
	Status          VerificationStatus `bun:"status,notnull" json:"status"`
	LastRequestID   string             `bun:"last_request_id,nullzero" json:"last_request_id,omitempty"`
	LastRequestDate *time.Time         `bun:"last_request_date,nullzero" json:"last_request_date,omitempty"`
}

type VerificationRequest struct {
	bun.BaseModel `bun:"table:verification_requests"`

	ID              string             `bun:"id,pk" json:"id"`
	UserID          string             `bun:"user_id,notnull" json:"user_id"`
	UserRole        UserRole           `bun:"user_role" json:"user_role"`
	Status          VerificationStatus `bun:"status,notnull" json:"status"`
	FullName        string             `bun:"full_name" json:"full_name"`
	PhoneNumber     string             `bun:"phone_number" json:"phone_number"`
	SubmittedAt     time.Time          `bun:"submitted_at,notnull" json:"submitted_at"`
	ReviewedAt      *time.Time         `bun:"reviewed_at,nullzero" json:"reviewed_at,omitempty"`
	ReviewedBy      string             `bun:"reviewed_by,nullzero" json:"reviewed_by,omitempty"`
	RejectionReason string             `bun:"rejection_reason,nullzero" json:"rejection_reason,omitempty"`
}
