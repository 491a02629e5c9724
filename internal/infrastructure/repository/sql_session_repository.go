package repository

import (
	"context"
	"fmt"

	"merchant-review-shopify-layer/internal/domain"
	"merchant-review-shopify-layer/internal/infrastructure/repository/entity"
	"merchant-review-shopify-layer/internal/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSessionRepository implements SessionRepository over the Session table
type SQLSessionRepository struct {
	db *gorm.DB
}

// NewSQLSessionRepository creates a new SQL session repository
func NewSQLSessionRepository(db *gorm.DB) ports.SessionRepository {
	return &SQLSessionRepository{db: db}
}

// FindByShop returns the first session of the shop that holds a token, offline sessions first
func (r *SQLSessionRepository) FindByShop(ctx context.Context, shop string) (*domain.Session, error) {
	if shop == "" {
		return nil, nil
	}

	var rows []entity.SQLSession
	err := r.db.WithContext(ctx).
		Where(&entity.SQLSession{Shop: shop}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "isOnline"}}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	for i := range rows {
		if rows[i].AccessToken != "" {
			return rows[i].ToDomain(), nil
		}
	}
	return nil, nil
}

// Save creates or replaces a session by id
func (r *SQLSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	row := entity.SQLSessionFromDomain(session)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteByShop removes every session of the shop
func (r *SQLSessionRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	if shop == "" {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where(&entity.SQLSession{Shop: shop}).
		Delete(&entity.SQLSession{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
