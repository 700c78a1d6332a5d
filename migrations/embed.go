// Package migrations embeds the goose SQL migrations so the API server, the
// worker and the integration tests apply the same schema without relying on
// a filesystem path at runtime.
package migrations

import "embed"

// FS holds all *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
