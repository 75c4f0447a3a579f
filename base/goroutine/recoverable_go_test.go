package goroutine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/x-xyz/settlement/base/backoff"
	"github.com/x-xyz/settlement/base/ctx"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	<-RecoverableGo(
		func() {
			res = append(res, "run task")
			panic("panic")
		},
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
			res = append(res, p.(string))
		}),
	)

	assert.Equal(t, []string{
		"before start",
		"run task",
		"after ended",
		"after recovered",
		"panic",
	}, res)
}

func TestSuperviseRestartsAfterPanic(t *testing.T) {
	runs := 0
	Supervise(ctx.Background(), "test", func(c ctx.Ctx) {
		runs++
		if runs < 3 {
			panic("boom")
		}
	}, backoff.NewLinear(time.Millisecond, 5*time.Millisecond))

	assert.Equal(t, 3, runs)
}

func TestSuperviseStopsWhenDone(t *testing.T) {
	c, cancel := ctx.WithCancel(ctx.Background())
	cancel()
	runs := 0
	Supervise(c, "test", func(c ctx.Ctx) {
		runs++
		panic("boom")
	}, backoff.NewExponential(time.Second, time.Second))

	assert.Equal(t, 1, runs)
}
