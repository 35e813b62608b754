// Package tx defines the transaction seam between domain services and
// storage. Services see only these interfaces; the pgx-backed
// implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a unit of work atomically. Price adjustments and
// document derivations rely on this: either the document header, its
// lines and the new totals are all written, or none of them are.
type Manager interface {
	// RunInTransaction executes fn inside a transaction, committing on
	// nil and rolling back on error. A nested call joins the
	// transaction already carried by ctx instead of opening a new one.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds read-only execution for query paths that must
// see a consistent snapshot without taking row locks.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction; writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
