package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID             string     `bun:"id,pk" json:"id"`
	SellerID       string     `bun:"seller_id,notnull" json:"seller_id"`
	Name           string     `bun:"name,notnull" json:"name"`
	Category       string     `bun:"category" json:"category"`
	Price          float64    `bun:"price" json:"price"`
	// SellerVerified is a denormalized display cache written by the catalog
	// annotator. The verification resolver never reads it.
	SellerVerified bool       `bun:"seller_verified" json:"seller_verified"`
	Location       *GeoPoint  `bun:"location,type:jsonb" json:"location,omitempty"`
	CreatedAt      time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,notnull" json:"updated_at"`
}
