package migrations

import "embed"

// FS contains embedded postgres migrations for the profile store.
//
//go:embed *.sql
var FS embed.FS
