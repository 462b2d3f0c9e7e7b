// Package migrations embeds the MySQL schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
