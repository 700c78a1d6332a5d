// Package api holds the wire contract of the Trip Journal API: the embedded
// OpenAPI document, from which internal/handler/gen is generated, and the
// conversions between the generated types and the domain shared by the HTTP
// handlers, the live feed and the Go client.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
