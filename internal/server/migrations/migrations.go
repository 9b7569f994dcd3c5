// Package migrations embeds the goose SQL migrations for the Postgres
// backing list.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
