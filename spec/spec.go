// Package spec embeds the OpenAPI specification for the Lunchmap API.
// The mock API serves it at /openapi.yaml, and the contract test checks it
// lists every route the client calls.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
