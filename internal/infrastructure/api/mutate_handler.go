package api

import (
	"encoding/json"
	"io"
	"net/http"

	"merchant-review-shopify-layer/internal/application"
	"merchant-review-shopify-layer/internal/domain"
)

const maxMutationBody = 1 << 20

type reviewMutationResponse struct {
	Success bool           `json:"success"`
	Review  *domain.Review `json:"review"`
}

type priceMutationResponse struct {
	Success  bool            `json:"success"`
	Product  json.RawMessage `json:"product"`
	Variants json.RawMessage `json:"variants"`
}

// mutateHandler serves POST /mutate: review upserts and variant price updates
func mutateHandler(mutations *application.MutationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMutationBody))
		if err != nil {
			writeError(w, r, &domain.ValidationError{Message: "Invalid request body"}, http.StatusForbidden)
			return
		}

		req, err := application.DecodeMutationRequest(body)
		if err != nil {
			writeError(w, r, err, http.StatusForbidden)
			return
		}

		switch req.Action {
		case application.ActionReview:
			review, err := mutations.UpsertReview(r.Context(), *req.Review)
			if err != nil {
				writeError(w, r, err, http.StatusForbidden)
				return
			}
			writeJSON(w, http.StatusOK, reviewMutationResponse{Success: true, Review: review})

		case application.ActionPrice:
			result, err := mutations.UpdatePrice(r.Context(), *req.Price)
			if err != nil {
				writeError(w, r, err, http.StatusForbidden)
				return
			}
			writeJSON(w, http.StatusOK, priceMutationResponse{
				Success:  true,
				Product:  result.Product,
				Variants: result.Variants,
			})
		}
	}
}
