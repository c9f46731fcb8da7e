package models

import (
	"time"

	"github.com/uptrace/bun"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderProcessing     OrderStatus = "processing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
	OrderReturned       OrderStatus = "returned"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderOutForDelivery,
		OrderDelivered, OrderCancelled, OrderReturned:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentUPI            PaymentMethod = "upi"
	PaymentWallet         PaymentMethod = "wallet"
)

type DeliveryOption string

const (
	DeliverySelfPickup DeliveryOption = "self_pickup"
	DeliveryHome       DeliveryOption = "delivery"
)

type RentalWindow struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type OrderItem struct {
	ProductID    string        `json:"product_id"`
	Quantity     float64       `json:"quantity"`
	UnitPrice    float64       `json:"unit_price"`
	TotalPrice   float64       `json:"total_price"`
	IsRental     bool          `json:"is_rental"`
	RentalWindow *RentalWindow `json:"rental_window,omitempty"`
}

type ShippingAddress struct {
	FullName    string   `json:"full_name"`
	PhoneNumber string   `json:"phone_number"`
	AddressLine string   `json:"address_line"`
	Village     string   `json:"village,omitempty"`
	District    string   `json:"district,omitempty"`
	State       string   `json:"state,omitempty"`
	Pincode     string   `json:"pincode"`
	Location    *GeoPoint `json:"location,omitempty"`
}

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	OrderID              string          `bun:"order_id,pk" json:"order_id"`
	BuyerID              string          `bun:"buyer_id,notnull" json:"buyer_id"`
	SellerID             string          `bun:"seller_id,notnull" json:"seller_id"`
	Items                []OrderItem     `bun:"items,type:jsonb" json:"items"`
	TotalAmount          float64         `bun:"total_amount" json:"total_amount"`
	Status               OrderStatus     `bun:"status" json:"status"`
	PaymentStatus        PaymentStatus   `bun:"payment_status" json:"payment_status"`
	PaymentMethod        PaymentMethod   `bun:"payment_method" json:"payment_method"`
	ShippingAddress      ShippingAddress `bun:"shipping_address,type:jsonb" json:"shipping_address"`
	DeliveryOption       DeliveryOption  `bun:"delivery_option" json:"delivery_option"`
	IsDirectOrder        bool            `bun:"is_direct_order" json:"is_direct_order"`
	CommissionPercentage float64         `bun:"commission_percentage" json:"commission_percentage"`
	CreatedAt            time.Time       `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt            time.Time       `bun:"updated_at,notnull" json:"updated_at"`
	DeliveredAt          *time.Time      `bun:"delivered_at,nullzero" json:"delivered_at,omitempty"`
	CancelledAt          *time.Time      `bun:"cancelled_at,nullzero" json:"cancelled_at,omitempty"`
	ReturnedAt           *time.Time      `bun:"returned_at,nullzero" json:"returned_at,omitempty"`
	Version              int64           `bun:"version,notnull,default:0" json:"-"`
}

type DirectOrderRequest struct {
	BuyerID         string          `json:"buyer_id"`
	SellerID        string          `json:"seller_id"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	DeliveryOption  DeliveryOption  `json:"delivery_option"`
}

type OrderResponse struct {
	OrderID     string      `json:"order_id"`
	BuyerID     string      `json:"buyer_id"`
	SellerID    string      `json:"seller_id"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
}
