package domain

import "github.com/x-xyz/settlement/base/ctx"

// TxRunner runs fn so that either every write it performs commits or none does.
// A call made with a ctx that already carries a transaction joins it.
type TxRunner interface {
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}

// SequenceRepo hands out monotonic ids per name
type SequenceRepo interface {
	Next(c ctx.Ctx, name string) (int64, error)
}
