package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ms-marketplace/internal/models"

	"github.com/uptrace/bun"
)

// maxCASAttempts bounds the optimistic-concurrency retry loop before the
// operation fails with ErrConflict.
const maxCASAttempts = 5

type DB struct {
	Bun *bun.DB
}

// CreateOrder → insert new order
func (d *DB) CreateOrder(order models.Order) error {
	_, err := d.Bun.NewInsert().Model(&order).Exec(context.Background())
	return err
}

// GetOrderByID → fetch one order by its ID
func (d *DB) GetOrderByID(id string) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Where("order_id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByBuyer → all orders placed by a buyer, newest first
func (d *DB) GetOrdersByBuyer(buyerID string) ([]models.Order, error) {
	var orders []models.Order
	err := d.Bun.NewSelect().
		Model(&orders).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersBySeller → all orders received by a seller, newest first
func (d *DB) GetOrdersBySeller(sellerID string) ([]models.Order, error) {
	var orders []models.Order
	err := d.Bun.NewSelect().
		Model(&orders).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderCAS applies transform to the current order and writes it back
// only if no concurrent writer bumped the version in between. On a version
// miss it re-reads and re-applies; after maxCASAttempts it gives up with
// ErrConflict. The returned order is the state that was persisted.
func (d *DB) UpdateOrderCAS(id string, transform func(*models.Order) error) (*models.Order, error) {
	ctx := context.Background()

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		order, err := d.GetOrderByID(id)
		if err != nil {
			return nil, err
		}

		currentVersion := order.Version
		if err := transform(order); err != nil {
			return nil, err
		}
		order.Version = currentVersion + 1

		res, err := d.Bun.NewUpdate().
			Model(order).
			Column("status", "payment_status", "updated_at",
				"delivered_at", "cancelled_at", "returned_at", "version").
			Where("order_id = ?", id).
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
			return order, nil
		}
		// Lost the race, retry against the fresh row
	}

	return nil, fmt.Errorf("order %s: %w", id, models.ErrConflict)
}
