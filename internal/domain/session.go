package domain

import "time"

// Session represents a stored Shopify session. The layout follows Shopify's session storage
// so the table written by the embedded app can be read as-is.
type Session struct {
	ID          string     `json:"id" bson:"_id"`
	Shop        string     `json:"shop" bson:"shop"`
	State       string     `json:"state" bson:"state"`
	IsOnline    bool       `json:"isOnline" bson:"isOnline"`
	Scope       string     `json:"scope,omitempty" bson:"scope,omitempty"`
	Expires     *time.Time `json:"expires,omitempty" bson:"expires,omitempty"`
	AccessToken string     `json:"-" bson:"accessToken"`
}

// OfflineSessionID returns the id Shopify uses for a shop's offline session
func OfflineSessionID(shop string) string {
	return "offline_" + shop
}
