// Package outbox buffers activity signals raised inside a transaction and
// hands them to a publisher once the outermost transaction commits.
package outbox

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
)

type bufferKey struct{}

type buffer struct {
	activities []*activity.ActivityHistory
}

// Runner is a domain.TxRunner that publishes buffered activities after commit
type Runner struct {
	tx        domain.TxRunner
	publisher activity.Publisher
}

func New(tx domain.TxRunner, publisher activity.Publisher) *Runner {
	return &Runner{tx: tx, publisher: publisher}
}

func (r *Runner) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	if _, ok := c.Value(bufferKey{}).(*buffer); ok {
		return fn(c)
	}

	buf := &buffer{}
	err := r.tx.RunWithTransaction(ctx.WithHiddenValue(c, bufferKey{}, buf), func(c ctx.Ctx) error {
		// the driver may retry fn on transient errors
		buf.activities = nil
		return fn(c)
	})
	if err != nil {
		return err
	}
	if len(buf.activities) > 0 && r.publisher != nil {
		r.publisher.Publish(c, buf.activities)
	}
	return nil
}

// Emit queues a for publishing when the surrounding transaction commits. Ids and
// times are filled in when missing. Outside a transaction a is dropped.
func Emit(c ctx.Ctx, a *activity.ActivityHistory) {
	buf, ok := c.Value(bufferKey{}).(*buffer)
	if !ok {
		c.WithField("type", a.Type).Warn("activity emitted outside a transaction")
		return
	}
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	if a.Time.IsZero() {
		a.Time = time.Now()
	}
	buf.activities = append(buf.activities, a)
}
