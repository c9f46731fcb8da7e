package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ms-marketplace/internal/catalog"
	"ms-marketplace/internal/logger"
	"ms-marketplace/internal/models"
	"ms-marketplace/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProductStore interface {
	CreateProduct(product models.Product) error
	GetProductByID(id string) (*models.Product, error)
}

type Handler struct {
	Annotator *catalog.Annotator
	Products  ProductStore
	Logger    *logger.Logger
}

func NewHandler(annotator *catalog.Annotator, products ProductStore, log *logger.Logger) *Handler {
	return &Handler{Annotator: annotator, Products: products, Logger: log}
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if product.SellerID == "" || product.Name == "" {
		http.Error(w, "seller_id and name are required", http.StatusBadRequest)
		return
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := h.Products.CreateProduct(product); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateProduct: %v", err))
		http.Error(w, "Could not create product: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.LogCatalog("CREATE", fmt.Sprintf("product %s listed by seller %s", product.ID, product.SellerID))

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Product created", map[string]string{
		"product_id": product.ID,
	}))
}

// GetProduct returns one product with its seller-verified flag freshly
// annotated.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.Products.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetProduct: %v", err))
		http.Error(w, "Failed to load product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	annotated, err := h.Annotator.AnnotateProducts([]models.Product{*product})
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetProduct: write-through incomplete: %v", err))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(annotated[0])
}

// AnnotateProducts stamps the seller-verified flag onto the posted products
// and writes it through to the product rows.
func (h *Handler) AnnotateProducts(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := json.NewDecoder(r.Body).Decode(&products); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	annotated, err := h.Annotator.AnnotateProducts(products)
	if err != nil {
		// Annotation still holds in memory; the write-through will catch up
		h.Logger.Error("API", fmt.Sprintf("AnnotateProducts: write-through incomplete: %v", err))
	}
	h.Logger.LogCatalog("ANNOTATE", fmt.Sprintf("%d products annotated", len(annotated)))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(annotated)
}

// RefreshSeller re-resolves one seller's trust flag across their catalog.
func (h *Handler) RefreshSeller(w http.ResponseWriter, r *http.Request) {
	sellerID := chi.URLParam(r, "sellerId")

	if err := h.Annotator.RefreshSeller(sellerID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("RefreshSeller: %v", err))
		http.Error(w, "Could not refresh seller products: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.Logger.LogCatalog("REFRESH", fmt.Sprintf("seller %s re-annotated", sellerID))

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Seller products refreshed", nil))
}
