// Package memdb provides the in-process ledger of record used by the memory
// repositories. Transactions are serialized by one mutex; every write made
// inside a transaction records an undo step that is replayed in reverse when
// the transaction fails.
package memdb

import (
	"sync"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
)

type txKey struct{}

type journal struct {
	undo []func()
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// DB serializes transactions over the memory repositories
type DB struct {
	mu sync.Mutex
}

func New() *DB {
	return &DB{}
}

// RunWithTransaction runs fn while holding the database lock. Nested calls join
// the outer transaction. fn's writes are undone when it returns an error or panics.
func (db *DB) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) (err error) {
	if InTransaction(c) {
		return fn(c)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
		if err != nil {
			c.WithFields(log.Fields{"err": err, "steps": len(j.undo)}).Debug("memdb rollback")
			j.rollback()
		}
	}()

	return fn(ctx.WithHiddenValue(c, txKey{}, j))
}

// InTransaction reports whether c belongs to a running transaction
func InTransaction(c ctx.Ctx) bool {
	_, ok := c.Value(txKey{}).(*journal)
	return ok
}

// Record registers undo to revert a write made under c. Writes made outside a
// transaction are not journaled.
func Record(c ctx.Ctx, undo func()) {
	if j, ok := c.Value(txKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}
