package domain

import (
	"strings"
	"time"
)

// Review is the merchant-authored snippet attached to one product of one shop.
// There is at most one review per (Shop, ProductID).
type Review struct {
	ID        string    `json:"id,omitempty"`
	Shop      string    `json:"shop"`
	ProductID string    `json:"productId"`
	Snippet   string    `json:"snippet"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewSummary is the public view of a review served to the admin UI and the storefront widget
type ReviewSummary struct {
	Snippet   string    `json:"snippet"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary returns the public view of the review
func (r *Review) Summary() *ReviewSummary {
	if r == nil {
		return nil
	}
	return &ReviewSummary{Snippet: r.Snippet, CreatedAt: r.CreatedAt}
}

// ValidateReviewInput checks the fields every stored review needs
func ValidateReviewInput(shop, productID, snippet string) error {
	switch {
	case shop == "":
		return ErrMissingShop
	case productID == "":
		return &ValidationError{Message: "Missing productId"}
	case strings.TrimSpace(snippet) == "":
		return &ValidationError{Message: "Review snippet cannot be empty"}
	}
	return nil
}
