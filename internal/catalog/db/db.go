package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ms-marketplace/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// CreateProduct → insert new product
func (d *DB) CreateProduct(product models.Product) error {
	_, err := d.Bun.NewInsert().Model(&product).Exec(context.Background())
	return err
}

// GetProductByID → fetch one product by its ID
func (d *DB) GetProductByID(id string) (*models.Product, error) {
	var product models.Product
	err := d.Bun.NewSelect().
		Model(&product).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsBySeller → all products listed by a seller
func (d *DB) GetProductsBySeller(sellerID string) ([]models.Product, error) {
	var products []models.Product
	err := d.Bun.NewSelect().
		Model(&products).
		Where("seller_id = ?", sellerID).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateSellerVerified → write the denormalized trust flag onto a product row
func (d *DB) UpdateSellerVerified(productID string, verified bool) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Product)(nil)).
		Set("seller_verified = ?", verified).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", productID).
		Exec(context.Background())
	return err
}
