// Package api embeds the OpenAPI contract of the storefront API.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
