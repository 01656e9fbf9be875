// Package migrations embeds the Postgres schema files applied by
// cmd/migrate and by the server on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
