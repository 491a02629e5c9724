package shopify

import (
	"strings"
	"testing"
)

func TestDocumentOperationNames(t *testing.T) {
	if productsDocument.operation != "Products" {
		t.Errorf("products operation = %q", productsDocument.operation)
	}
	if priceUpdateDocument.operation != "productVariantsBulkUpdate" {
		t.Errorf("price update operation = %q", priceUpdateDocument.operation)
	}
	if !strings.Contains(productsDocument.source, "variants(first: 5)") {
		t.Error("products query does not cap variants at 5")
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "syntax", source: `query Broken { products(`, want: "failed to parse"},
		{name: "anonymous", source: `{ shop { name } }`, want: "must be named"},
		{name: "two operations", source: `query A { shop { name } } query B { shop { id } }`, want: "exactly one operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDocument(tt.name+".graphql", tt.source)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
