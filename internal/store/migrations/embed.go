package migrations

import "embed"

// FS contains the embedded results-store migrations.
//
//go:embed *.sql
var FS embed.FS
