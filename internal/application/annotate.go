package application

import "merchant-review-shopify-layer/internal/domain"

// Annotate attaches each product's review snippet and cursor to the product node.
// Products without a review get an empty snippet. Reviews are matched by exact product id.
func Annotate(products []domain.ProductEdge, reviews []*domain.Review) []domain.AnnotatedProduct {
	snippets := make(map[string]string, len(reviews))
	for _, r := range reviews {
		if r == nil {
			continue
		}
		snippets[r.ProductID] = r.Snippet
	}

	annotated := make([]domain.AnnotatedProduct, 0, len(products))
	for _, edge := range products {
		annotated = append(annotated, domain.AnnotatedProduct{
			Product: edge.Node,
			Review:  snippets[edge.Node.ID],
			Cursor:  edge.Cursor,
		})
	}
	return annotated
}
