package domain

// Product mirrors the product node returned by the Admin GraphQL API.
// Field names and nesting follow the upstream node so clients receive the same shape.
type Product struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	FeaturedMedia *FeaturedMedia `json:"featuredMedia"`
	Variants      VariantList    `json:"variants"`
}

// FeaturedMedia holds the product's preview image, if any
type FeaturedMedia struct {
	Preview *MediaPreview `json:"preview"`
}

// MediaPreview wraps the preview image of a media object
type MediaPreview struct {
	Image *Image `json:"image"`
}

// Image is an upstream image reference
type Image struct {
	URL string `json:"url"`
}

// VariantList is the connection of a product's first variants
type VariantList struct {
	Nodes []Variant `json:"nodes"`
}

// Variant is a sellable configuration of a product. Only Price is mutable from this service.
type Variant struct {
	ID             string  `json:"id"`
	Price          string  `json:"price"`
	CompareAtPrice *string `json:"compareAtPrice"`
	Image          *Image  `json:"image"`
}

// FeaturedImageURL returns the preview image URL or an empty string
func (p Product) FeaturedImageURL() string {
	if p.FeaturedMedia == nil || p.FeaturedMedia.Preview == nil || p.FeaturedMedia.Preview.Image == nil {
		return ""
	}
	return p.FeaturedMedia.Preview.Image.URL
}

// ProductEdge pairs a product with its position cursor in the upstream result set
type ProductEdge struct {
	Cursor string  `json:"cursor"`
	Node   Product `json:"node"`
}

// PageInfo is the upstream page navigation metadata
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// ProductPage is one page of products as returned by the upstream client
type ProductPage struct {
	Edges    []ProductEdge
	PageInfo PageInfo
}

// AnnotatedProduct is a product node enriched with its review snippet and cursor.
// Review is always set, empty when the product has no review.
type AnnotatedProduct struct {
	Product
	Review string `json:"review"`
	Cursor string `json:"cursor"`
}

// AnnotatedPage is the payload of the products page endpoint
type AnnotatedPage struct {
	Products []AnnotatedProduct `json:"products"`
	PageInfo PageInfo           `json:"pageInfo"`
}
