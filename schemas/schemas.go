// Package schemas embeds the JSON Schemas shipped with the binary.
package schemas

import _ "embed"

// Seed is the JSON Schema for seed fixtures
//
//go:embed seed.schema.json
var Seed []byte
