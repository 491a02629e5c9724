// Package docs holds the OpenAPI description served under /swagger.
package docs

import _ "embed"

// SwaggerJSON is the Swagger 2.0 document of the HTTP API
//
//go:embed swagger.json
var SwaggerJSON []byte
