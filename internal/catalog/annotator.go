package catalog

import (
	"fmt"

	"ms-marketplace/internal/models"
)

type VerifiedResolver interface {
	ResolveSellerVerified(userID string) bool
}

type ProductStore interface {
	GetProductsBySeller(sellerID string) ([]models.Product, error)
	UpdateSellerVerified(productID string, verified bool) error
}

// Annotator denormalizes seller trust status onto product records for fast
// listing display. The flag it writes is a point-in-time copy; the resolver
// is always the source of truth and never reads it back.
type Annotator struct {
	Resolver VerifiedResolver
	Products ProductStore
	Cache    *Cache
}

func NewAnnotator(resolver VerifiedResolver, products ProductStore, cache *Cache) *Annotator {
	return &Annotator{Resolver: resolver, Products: products, Cache: cache}
}

// AnnotateProducts resolves each distinct seller once, stamps the flag onto
// the given products, and writes it through to the product rows. The
// annotated slice is returned; write-through failures are reported but do
// not void the in-memory annotation.
func (a *Annotator) AnnotateProducts(products []models.Product) ([]models.Product, error) {
	verifiedBySeller := make(map[string]bool)

	for _, product := range products {
		if _, seen := verifiedBySeller[product.SellerID]; seen {
			continue
		}
		verifiedBySeller[product.SellerID] = a.resolveCached(product.SellerID)
	}

	var firstErr error
	annotated := make([]models.Product, len(products))
	for i, product := range products {
		product.SellerVerified = verifiedBySeller[product.SellerID]
		annotated[i] = product

		if err := a.Products.UpdateSellerVerified(product.ID, product.SellerVerified); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to write seller_verified for product %s: %w", product.ID, err)
		}
	}

	return annotated, firstErr
}

// RefreshSeller re-resolves one seller and rewrites the flag on all their
// products. Called after a verification decision changes a seller's status.
func (a *Annotator) RefreshSeller(sellerID string) error {
	if err := a.Cache.Invalidate(sellerID); err != nil {
		// A stale cache entry only delays the refresh by one TTL
		fmt.Printf("Failed to invalidate seller_verified cache for %s: %v\n", sellerID, err)
	}

	verified := a.resolveCached(sellerID)

	products, err := a.Products.GetProductsBySeller(sellerID)
	if err != nil {
		return fmt.Errorf("failed to load products for seller %s: %w", sellerID, err)
	}

	for _, product := range products {
		if err := a.Products.UpdateSellerVerified(product.ID, verified); err != nil {
			return fmt.Errorf("failed to write seller_verified for product %s: %w", product.ID, err)
		}
	}

	return nil
}

func (a *Annotator) resolveCached(sellerID string) bool {
	if verified, found := a.Cache.Get(sellerID); found {
		return verified
	}

	verified := a.Resolver.ResolveSellerVerified(sellerID)
	if err := a.Cache.Set(sellerID, verified); err != nil {
		fmt.Printf("Failed to cache seller_verified for %s: %v\n", sellerID, err)
	}
	return verified
}
