// Package migrations holds the versioned schema of the inspection database.
// Files are named NNN_name.up.sql and NNN_name.down.sql; the store applies
// every .up.sql newer than the recorded schema version, in order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
