// Package migrations embeds the SQL schema so the server can apply it at
// startup. Cascade behavior lives here, declared on the foreign keys,
// rather than being inferred from ORM tags.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
