package entity

import (
	"time"

	"merchant-review-shopify-layer/internal/domain"
)

// MongoSessionDoc represents a Shopify session in MongoDB. The id is the session id, not an ObjectID.
type MongoSessionDoc struct {
	ID          string     `bson:"_id"`
	Shop        string     `bson:"shop"`
	State       string     `bson:"state"`
	IsOnline    bool       `bson:"isOnline"`
	Scope       string     `bson:"scope,omitempty"`
	Expires     *time.Time `bson:"expires,omitempty"`
	AccessToken string     `bson:"accessToken"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSessionDoc) ToDomain() *domain.Session {
	return &domain.Session{
		ID:          d.ID,
		Shop:        d.Shop,
		State:       d.State,
		IsOnline:    d.IsOnline,
		Scope:       d.Scope,
		Expires:     d.Expires,
		AccessToken: d.AccessToken,
	}
}

// MongoSessionDocFromDomain converts a domain entity to a MongoDB document
func MongoSessionDocFromDomain(session *domain.Session) *MongoSessionDoc {
	return &MongoSessionDoc{
		ID:          session.ID,
		Shop:        session.Shop,
		State:       session.State,
		IsOnline:    session.IsOnline,
		Scope:       session.Scope,
		Expires:     session.Expires,
		AccessToken: session.AccessToken,
	}
}

// SQLSession maps the "Session" table written by Shopify's session storage
type SQLSession struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Shop        string     `gorm:"column:shop;not null;index"`
	State       string     `gorm:"column:state;not null"`
	IsOnline    bool       `gorm:"column:isOnline;not null;default:false"`
	Scope       *string    `gorm:"column:scope"`
	Expires     *time.Time `gorm:"column:expires"`
	AccessToken string     `gorm:"column:accessToken;not null"`
}

// TableName keeps the table name used by the embedded app
func (SQLSession) TableName() string {
	return "Session"
}

// ToDomain converts the row to a domain entity
func (s *SQLSession) ToDomain() *domain.Session {
	session := &domain.Session{
		ID:          s.ID,
		Shop:        s.Shop,
		State:       s.State,
		IsOnline:    s.IsOnline,
		Expires:     s.Expires,
		AccessToken: s.AccessToken,
	}
	if s.Scope != nil {
		session.Scope = *s.Scope
	}
	return session
}

// SQLSessionFromDomain converts a domain entity to a row
func SQLSessionFromDomain(session *domain.Session) *SQLSession {
	row := &SQLSession{
		ID:          session.ID,
		Shop:        session.Shop,
		State:       session.State,
		IsOnline:    session.IsOnline,
		Expires:     session.Expires,
		AccessToken: session.AccessToken,
	}
	if session.Scope != "" {
		scope := session.Scope
		row.Scope = &scope
	}
	return row
}
