package newsletter

import "embed"

// Migrations holds the embedded goose SQL migrations applied by the migrate
// command and by integration tests.
//
//go:embed migrations
var Migrations embed.FS
