package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ms-marketplace/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// GetVerificationRecord → fetch a user's authoritative trust record
func (d *DB) GetVerificationRecord(userID string) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := d.Bun.NewSelect().
		Model(&record).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("verification record for user %s: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertVerificationRecord → insert or replace a user's trust record
func (d *DB) UpsertVerificationRecord(record models.VerificationRecord) error {
	_, err := d.Bun.NewInsert().
		Model(&record).
		On("CONFLICT (user_id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("last_request_id = EXCLUDED.last_request_id").
		Set("last_request_date = EXCLUDED.last_request_date").
		Exec(context.Background())
	return err
}

// CreateVerificationRequest → insert new request
func (d *DB) CreateVerificationRequest(req models.VerificationRequest) error {
	_, err := d.Bun.NewInsert().Model(&req).Exec(context.Background())
	return err
}

// GetVerificationRequest → fetch one request by ID
func (d *DB) GetVerificationRequest(id string) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	err := d.Bun.NewSelect().
		Model(&req).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("verification request %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetVerificationRequestsByUser → all requests a user has submitted, newest first
func (d *DB) GetVerificationRequestsByUser(userID string) ([]models.VerificationRequest, error) {
	var reqs []models.VerificationRequest
	err := d.Bun.NewSelect().
		Model(&reqs).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateVerificationRequest → update review fields on a request
func (d *DB) UpdateVerificationRequest(req models.VerificationRequest) error {
	_, err := d.Bun.NewUpdate().
		Model(&req).
		Column("status", "reviewed_at", "reviewed_by", "rejection_reason").
		Where("id = ?", req.ID).
		Exec(context.Background())
	return err
}
