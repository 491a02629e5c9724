package shopify

// ProductsQuery fetches one page of products with their first five variants.
// Exactly one of first/after or last/before is set by the caller.
const ProductsQuery = `
query Products($first: Int, $last: Int, $after: String, $before: String) {
  products(first: $first, last: $last, after: $after, before: $before) {
    pageInfo {
      hasNextPage
      hasPreviousPage
      endCursor
      startCursor
    }
    edges {
      cursor
      node {
        id
        title
        featuredMedia {
          preview {
            image {
              url
            }
          }
        }
        variants(first: 5) {
          nodes {
            id
            compareAtPrice
            price
            image {
              url
            }
          }
        }
      }
    }
  }
}
`
