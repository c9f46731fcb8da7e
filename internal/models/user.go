package models

import (
	"time"

	"github.com/uptrace/bun"
)

type UserRole string

const (
	RoleFarmer     UserRole = "farmer"
	RoleVendor     UserRole = "vendor"
	RoleConsumer   UserRole = "consumer"
	RoleConsultant UserRole = "consultant"
)

type FarmingMethod string

const (
	FarmingOrganic FarmingMethod = "organic"
	FarmingNatural FarmingMethod = "natural"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID            string        `bun:"id,pk" json:"id"`
	FullName      string        `bun:"full_name,notnull" json:"full_name"`
	Role          UserRole      `bun:"role,notnull" json:"role"`
	FarmingMethod FarmingMethod `bun:"farming_method,nullzero" json:"farming_method,omitempty"`
	Location      *GeoPoint     `bun:"location,type:jsonb" json:"location,omitempty"`
	CreatedAt     time.Time     `bun:"created_at,notnull" json:"created_at"`
}

// UserWithDistance is a matching result: a user plus their distance in km
// from the query origin.
type UserWithDistance struct {
	User       User    `json:"user"`
	DistanceKm float64 `json:"distance_km"`
}
