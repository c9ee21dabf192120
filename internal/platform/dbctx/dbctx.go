package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context is the argument bundle every catalog repo method takes: the request
// context plus an optional transaction. A nil Tx makes the repo fall back to
// its own connection, which is how the resolver phases run their batched
// lookups and creates outside any enclosing transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
