package mongoclient

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/settlement/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type patch struct {
		Status     *string          `bson:"status"`
		HighestBid *decimal.Decimal `bson:"highestBid"`
		BidCount   *int64           `bson:"bidCount"`
		ClosedAt   *time.Time       `bson:"closedAt"`
		Seller     string           `bson:"seller"`
		Note       string           `bson:"-"`
		hidden     string
	}

	closedAt := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &patch{
		Status:     ptr.String("sold"),
		HighestBid: ptr.Decimal(decimal.NewFromInt(100)),
		BidCount:   ptr.Int64(0),
		ClosedAt:   &closedAt,
		Note:       "skipped",
		hidden:     "skipped",
	}

	m, err := MakeBsonM(p)
	assert.NoError(t, err)
	assert.Equal(t, bson.M{
		"status":     "sold",
		"highestBid": decimal.NewFromInt(100),
		"bidCount":   int64(0),
		"closedAt":   closedAt,
	}, m)

	m, err = MakeBsonM(patch{Seller: "0xabc"})
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"seller": "0xabc"}, m)
}

func TestMakeBsonMNotStruct(t *testing.T) {
	_, err := MakeBsonM(ptr.Int(1))
	assert.ErrorIs(t, err, ErrNotStruct)
}
