package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTag(t *testing.T) {
	assert.Nil(t, parseTag(nil))
	assert.Equal(t, []string{"func:bid", "medium:0xabc"}, parseTag([]string{"func", "bid", "medium", "0xabc"}))
	assert.Panics(t, func() { parseTag([]string{"dangling"}) })
}

func TestBumpWithoutAgent(t *testing.T) {
	met := New("test", WithoutPodName())
	assert.NotPanics(t, func() {
		met.BumpSum("sale", 1, "source", "auction")
		met.BumpAvg("price", 2.5)
		met.BumpHistogram("size", 3)
		met.BumpTime("time", "func", "test").End()
	})
}

func TestDDMetricsTagsDoNotAlias(t *testing.T) {
	dm := DDMetrics{ddTags: make([]string, 1, 8)}
	dm.ddTags[0] = "env:test"
	a := dm.tags([]string{"k", "a"})
	b := dm.tags([]string{"k", "b"})
	assert.Equal(t, []string{"env:test", "k:a"}, a)
	assert.Equal(t, []string{"env:test", "k:b"}, b)
}
