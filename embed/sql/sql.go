package sql

import _ "embed"

// Schema holds the full database schema. All statements are idempotent
// so it can be applied on every startup.
//
//go:embed schema.sql
var Schema string
