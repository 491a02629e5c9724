package api

import (
	"net/http"

	"merchant-review-shopify-layer/internal/application"
)

// productsPageHandler serves GET /products-page?shop=&after=|before=
func productsPageHandler(catalog *application.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		page, err := catalog.ProductsPage(r.Context(), query.Get("shop"), query.Get("after"), query.Get("before"))
		if err != nil {
			writeError(w, r, err, http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}
