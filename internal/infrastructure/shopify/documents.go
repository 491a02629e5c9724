package shopify

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// document is a parsed GraphQL operation ready to be sent upstream
type document struct {
	operation string
	source    string
}

var (
	productsDocument    = mustParseDocument("products.graphql", ProductsQuery)
	priceUpdateDocument = mustParseDocument("variant_price_update.graphql", VariantPriceUpdateMutation)
)

// parseDocument checks the syntax of a single-operation document and extracts its operation name
func parseDocument(name, source string) (document, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: source})
	if err != nil {
		return document{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(doc.Operations) != 1 {
		return document{}, fmt.Errorf("%s must contain exactly one operation, found %d", name, len(doc.Operations))
	}
	op := doc.Operations[0]
	if op.Name == "" {
		return document{}, fmt.Errorf("%s: operation must be named", name)
	}
	return document{operation: op.Name, source: source}, nil
}

func mustParseDocument(name, source string) document {
	doc, err := parseDocument(name, source)
	if err != nil {
		panic(err)
	}
	return doc
}
