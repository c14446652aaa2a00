// Package ctxutil provides small context helpers shared across commands.
package ctxutil

import "context"

// Canceled reports whether ctx has been canceled or passed its deadline,
// returning the context error when it has and nil otherwise. Commands and
// the ingest pipeline call this at entry points and between files so an
// interrupt lands on a clean file boundary.
//
// ctx.Err() already returns nil while the context is live, so no select
// with a default case is needed.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
