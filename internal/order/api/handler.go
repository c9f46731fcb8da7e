package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ms-marketplace/internal/logger"
	"ms-marketplace/internal/models"
	"ms-marketplace/internal/order"
	"ms-marketplace/internal/order/pickup"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	OrderService *order.OrderService
	Pickup       *pickup.Generator
	Logger       *logger.Logger
}

func NewHandler(orderService *order.OrderService, pickupGen *pickup.Generator, log *logger.Logger) *Handler {
	return &Handler{
		OrderService: orderService,
		Pickup:       pickupGen,
		Logger:       log,
	}
}

func (h *Handler) CreateDirectOrder(w http.ResponseWriter, r *http.Request) {
	var req models.DirectOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateDirectOrder: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	orderID, err := h.OrderService.CreateDirectOrder(req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateDirectOrder: %v", err))
		switch {
		case errors.Is(err, models.ErrSelfTrade):
			http.Error(w, "Users cannot purchase their own products", http.StatusConflict)
		case errors.Is(err, models.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Could not create order: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	h.Logger.LogOrder("CREATE", orderID, fmt.Sprintf("direct order from buyer %s to seller %s", req.BuyerID, req.SellerID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(models.OrderResponse{
		OrderID:  orderID,
		BuyerID:  req.BuyerID,
		SellerID: req.SellerID,
		Status:   models.OrderPending,
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.Logger.Info("API", fmt.Sprintf("GetOrder: orderId=%s", orderID))

	orderData, err := h.OrderService.GetOrder(orderID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrder: order not found: %v", err))
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orderData); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrder: failed to encode response: %v", err))
	}
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := h.OrderService.UpdateOrderStatus(orderID, body.Status)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateOrderStatus: %v", err))
		switch {
		case errors.Is(err, models.ErrNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrConflict):
			http.Error(w, "Order is being modified concurrently, try again", http.StatusConflict)
		default:
			http.Error(w, "Could not update order: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	h.Logger.LogOrder("STATUS", orderID, fmt.Sprintf("status set to %s", body.Status))

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var body struct {
		BuyerRating  *order.RatingInput `json:"buyer_rating,omitempty"`
		SellerRating *order.RatingInput `json:"seller_rating,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	err := h.OrderService.CompleteOrder(orderID, body.BuyerRating, body.SellerRating)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CompleteOrder: %v", err))
		switch {
		case errors.Is(err, models.ErrNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Could not complete order: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	h.Logger.LogOrder("COMPLETE", orderID, "order delivered and ratings recorded")

	w.WriteHeader(http.StatusNoContent)
}

// PickupCode serves the QR a buyer shows at the farm gate. Only self-pickup
// orders carry one.
func (h *Handler) PickupCode(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	orderData, err := h.OrderService.GetOrder(orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if orderData.DeliveryOption != models.DeliverySelfPickup {
		http.Error(w, "Order is not a self-pickup order", http.StatusBadRequest)
		return
	}

	png, err := h.Pickup.GenerateQR(pickup.Code{
		OrderID:  orderData.OrderID,
		BuyerID:  orderData.BuyerID,
		SellerID: orderData.SellerID,
		IssuedAt: orderData.CreatedAt,
	})
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("PickupCode: failed to generate QR: %v", err))
		http.Error(w, "Could not generate pickup code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *Handler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	role := r.URL.Query().Get("role")

	var (
		orders []models.Order
		err    error
	)
	switch role {
	case "seller":
		orders, err = h.OrderService.GetOrdersBySeller(userID)
	case "buyer", "":
		orders, err = h.OrderService.GetOrdersByBuyer(userID)
	default:
		http.Error(w, "role must be buyer or seller", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetUserOrders: %v", err))
		http.Error(w, "Failed to retrieve orders: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(orders)
}
