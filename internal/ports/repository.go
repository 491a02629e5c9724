package ports

import (
	"context"

	"merchant-review-shopify-layer/internal/domain"
)

// SessionRepository defines the interface for Shopify session persistence.
// Lookups return (nil, nil) when nothing matches.
type SessionRepository interface {
	// FindByShop returns a session holding an access token for the shop, offline sessions first
	FindByShop(ctx context.Context, shop string) (*domain.Session, error)
	// Save creates or replaces a session by id
	Save(ctx context.Context, session *domain.Session) error
	// DeleteByShop removes every session of the shop and reports how many were removed
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}

// ReviewRepository defines the interface for review snippet persistence
type ReviewRepository interface {
	// ListByShop returns every review of a shop, in no particular order
	ListByShop(ctx context.Context, shop string) ([]*domain.Review, error)
	// Get returns the review of one product, or (nil, nil) when there is none
	Get(ctx context.Context, shop, productID string) (*domain.Review, error)
	// Upsert creates the review or overwrites its snippet, keeping createdAt, and returns the stored row
	Upsert(ctx context.Context, shop, productID, snippet string) (*domain.Review, error)
	// Delete removes the review of one product; deleting a missing review is not an error
	Delete(ctx context.Context, shop, productID string) error
	// DeleteByShop removes every review of the shop and reports how many were removed
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}

// StateStore keeps short-lived OAuth state nonces
type StateStore interface {
	Put(ctx context.Context, state, shop string) error
	// Consume returns the shop bound to the state and removes it; ok is false when unknown or expired
	Consume(ctx context.Context, state string) (shop string, ok bool, err error)
}
