// Package migrations embeds the PostgreSQL schema migrations for the
// reference collection server.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
