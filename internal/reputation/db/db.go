package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ms-marketplace/internal/models"

	"github.com/uptrace/bun"
)

const maxCASAttempts = 5

type DB struct {
	Bun *bun.DB
}

// GetReputation → fetch one aggregate by user ID
func (d *DB) GetReputation(userID string) (*models.Reputation, error) {
	var rep models.Reputation
	err := d.Bun.NewSelect().
		Model(&rep).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reputation for user %s: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// UpsertReputationCAS loads the user's aggregate (creating the zero-value one
// if it doesn't exist yet), applies transform, and persists only if no
// concurrent writer got there first. Both the insert and the update race are
// retried up to maxCASAttempts before ErrConflict.
func (d *DB) UpsertReputationCAS(userID string, transform func(*models.Reputation) error) (*models.Reputation, error) {
	ctx := context.Background()

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		rep, err := d.GetReputation(userID)

		if errors.Is(err, models.ErrNotFound) {
			rep = models.NewReputation(userID)
			if err := transform(rep); err != nil {
				return nil, err
			}
			rep.Version = 1

			res, err := d.Bun.NewInsert().
				Model(rep).
				On("CONFLICT (user_id) DO NOTHING").
				Exec(ctx)
			if err != nil {
				return nil, err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return nil, err
			}
			if affected == 1 {
				return rep, nil
			}
			// Someone created the row first, go around and update it
			continue
		}
		if err != nil {
			return nil, err
		}

		currentVersion := rep.Version
		if err := transform(rep); err != nil {
			return nil, err
		}
		rep.Version = currentVersion + 1

		res, err := d.Bun.NewUpdate().
			Model(rep).
			Column("rating", "total_ratings", "successful_orders",
				"verified_status", "badges", "reviews", "version").
			Where("user_id = ?", userID).
			Where("version = ?", currentVersion).
			Exec(ctx)
		if err != nil {
			return nil, err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 1 {
			return rep, nil
		}
	}

	return nil, fmt.Errorf("reputation for user %s: %w", userID, models.ErrConflict)
}
