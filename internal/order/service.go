package order

import (
	"fmt"
	"time"

	"ms-marketplace/internal/models"

	"github.com/google/uuid"
)

type DBLayer interface {
	CreateOrder(order models.Order) error
	GetOrderByID(id string) (*models.Order, error)
	GetOrdersByBuyer(buyerID string) ([]models.Order, error)
	GetOrdersBySeller(sellerID string) ([]models.Order, error)
	UpdateOrderCAS(id string, transform func(*models.Order) error) (*models.Order, error)
}

type ReputationUpdater interface {
	IncrementSuccessfulOrders(userID string) error
	AddRating(req models.RatingRequest) error
}

type KafkaPublisher interface {
	PublishOrderCreated(order models.Order) error
	PublishOrderStatusChanged(order models.Order) error
}

type OrderService struct {
	DB         DBLayer
	Reputation ReputationUpdater
	Kafka      KafkaPublisher
}

func NewOrderService(db DBLayer, reputation ReputationUpdater, kafka KafkaPublisher) *OrderService {
	return &OrderService{DB: db, Reputation: reputation, Kafka: kafka}
}

// CreateDirectOrder places a zero-commission order straight between a buyer
// and a farmer. The order starts pending; cash-on-delivery keeps payment
// pending, anything else is treated as already settled.
func (s *OrderService) CreateDirectOrder(req models.DirectOrderRequest) (string, error) {
	if req.BuyerID == req.SellerID {
		return "", fmt.Errorf("order for buyer %s: %w", req.BuyerID, models.ErrSelfTrade)
	}
	if len(req.Items) == 0 {
		return "", fmt.Errorf("order has no items: %w", models.ErrValidation)
	}
	if err := validateShipping(req.ShippingAddress, req.DeliveryOption); err != nil {
		return "", err
	}

	totalAmount := 0.0
	for _, item := range req.Items {
		totalAmount += item.TotalPrice
	}

	paymentStatus := models.PaymentCompleted
	if req.PaymentMethod == models.PaymentCashOnDelivery {
		paymentStatus = models.PaymentPending
	}

	now := time.Now()
	order := models.Order{
		OrderID:              uuid.NewString(),
		BuyerID:              req.BuyerID,
		SellerID:             req.SellerID,
		Items:                req.Items,
		TotalAmount:          totalAmount,
		Status:               models.OrderPending,
		PaymentStatus:        paymentStatus,
		PaymentMethod:        req.PaymentMethod,
		ShippingAddress:      req.ShippingAddress,
		DeliveryOption:       req.DeliveryOption,
		IsDirectOrder:        true,
		CommissionPercentage: 0,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.DB.CreateOrder(order); err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.Kafka.PublishOrderCreated(order); err != nil {
		fmt.Printf("Kafka publish error (order created): %v\n", err)
	}

	return order.OrderID, nil
}

// UpdateOrderStatus moves an order to newStatus. Transitions are permissive:
// any status may follow any other. Entering delivered/cancelled/returned
// stamps the matching timestamp, and the seller's successful-order counter is
// bumped exactly once per edge into delivered, no matter how often the same
// status is re-written.
func (s *OrderService) UpdateOrderStatus(orderID string, newStatus models.OrderStatus) error {
	if !models.ValidOrderStatus(newStatus) {
		return fmt.Errorf("status %q: %w", newStatus, models.ErrValidation)
	}

	var prevStatus models.OrderStatus
	order, err := s.DB.UpdateOrderCAS(orderID, func(o *models.Order) error {
		prevStatus = o.Status
		now := time.Now()
		o.Status = newStatus
		o.UpdatedAt = now

		switch newStatus {
		case models.OrderDelivered:
			o.DeliveredAt = &now
		case models.OrderCancelled:
			o.CancelledAt = &now
		case models.OrderReturned:
			o.ReturnedAt = &now
		}
		return nil
	})
	if err != nil {
		return err
	}

	if newStatus == models.OrderDelivered && prevStatus != models.OrderDelivered {
		if err := s.Reputation.IncrementSuccessfulOrders(order.SellerID); err != nil {
			// The order update already landed; losing the counter bump is
			// preferable to failing the delivery
			fmt.Printf("Failed to update successful orders for seller %s: %v\n", order.SellerID, err)
		}
	}

	if err := s.Kafka.PublishOrderStatusChanged(*order); err != nil {
		fmt.Printf("Kafka publish error (order status changed): %v\n", err)
	}

	return nil
}

// RatingInput is an optional star rating recorded while completing an order.
type RatingInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// CompleteOrder marks the order delivered and records the optional mutual
// ratings between buyer and seller.
func (s *OrderService) CompleteOrder(orderID string, buyerRating, sellerRating *RatingInput) error {
	order, err := s.DB.GetOrderByID(orderID)
	if err != nil {
		return err
	}

	if err := s.UpdateOrderStatus(orderID, models.OrderDelivered); err != nil {
		return err
	}

	if buyerRating != nil {
		err := s.Reputation.AddRating(models.RatingRequest{
			RaterID:      order.BuyerID,
			TargetUserID: order.SellerID,
			OrderID:      orderID,
			Rating:       buyerRating.Rating,
			Comment:      buyerRating.Comment,
		})
		if err != nil {
			return fmt.Errorf("failed to record buyer rating: %w", err)
		}
	}

	if sellerRating != nil {
		err := s.Reputation.AddRating(models.RatingRequest{
			RaterID:      order.SellerID,
			TargetUserID: order.BuyerID,
			OrderID:      orderID,
			Rating:       sellerRating.Rating,
			Comment:      sellerRating.Comment,
		})
		if err != nil {
			return fmt.Errorf("failed to record seller rating: %w", err)
		}
	}

	return nil
}

func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	return s.DB.GetOrderByID(id)
}

func (s *OrderService) GetOrdersByBuyer(buyerID string) ([]models.Order, error) {
	return s.DB.GetOrdersByBuyer(buyerID)
}

func (s *OrderService) GetOrdersBySeller(sellerID string) ([]models.Order, error) {
	return s.DB.GetOrdersBySeller(sellerID)
}

func validateShipping(addr models.ShippingAddress, option models.DeliveryOption) error {
	switch option {
	case models.DeliverySelfPickup:
		return nil
	case models.DeliveryHome:
		if addr.FullName == "" || addr.PhoneNumber == "" || addr.AddressLine == "" || addr.Pincode == "" {
			return fmt.Errorf("delivery orders need a full shipping address: %w", models.ErrValidation)
		}
		return nil
	default:
		return fmt.Errorf("delivery option %q: %w", option, models.ErrValidation)
	}
}

// IsTerminal reports whether status ends the order lifecycle.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.OrderDelivered ||
		status == models.OrderCancelled ||
		status == models.OrderReturned
}
