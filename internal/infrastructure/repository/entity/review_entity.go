package entity

import (
	"strconv"
	"time"

	"merchant-review-shopify-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoReviewDoc represents a review snippet in MongoDB
type MongoReviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Shop      string             `bson:"shop"`
	ProductID string             `bson:"productId"`
	Snippet   string             `bson:"snippet"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoReviewDoc) ToDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID.Hex(),
		Shop:      d.Shop,
		ProductID: d.ProductID,
		Snippet:   d.Snippet,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// SQLReview maps the "Review" table. (shop, productId) is unique.
type SQLReview struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Shop      string    `gorm:"column:shop;not null;uniqueIndex:Review_shop_productId_key"`
	ProductID string    `gorm:"column:productId;not null;uniqueIndex:Review_shop_productId_key"`
	Snippet   string    `gorm:"column:snippet;not null"`
	CreatedAt time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null"`
}

// TableName keeps the table name used by the embedded app
func (SQLReview) TableName() string {
	return "Review"
}

// ToDomain converts the row to a domain entity
func (r *SQLReview) ToDomain() *domain.Review {
	return &domain.Review{
		ID:        strconv.FormatUint(uint64(r.ID), 10),
		Shop:      r.Shop,
		ProductID: r.ProductID,
		Snippet:   r.Snippet,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
