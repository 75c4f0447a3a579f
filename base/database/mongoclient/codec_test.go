package mongoclient

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func TestDecimalCodecRoundTrip(t *testing.T) {
	req := require.New(t)
	type doc struct {
		Price decimal.Decimal `bson:"price"`
	}
	reg := NewRegistry()

	in := doc{Price: decimal.New(975, 17)}
	raw, err := bson.MarshalWithRegistry(reg, in)
	req.NoError(err)
	req.Equal(bsontype.Decimal128, bson.Raw(raw).Lookup("price").Type)

	out := doc{}
	req.NoError(bson.UnmarshalWithRegistry(reg, raw, &out))
	req.True(in.Price.Equal(out.Price))
}

func TestDecimalCodecDecodesLegacyTypes(t *testing.T) {
	req := require.New(t)
	type doc struct {
		Price decimal.Decimal `bson:"price"`
	}
	reg := NewRegistry()

	raw, err := bson.Marshal(bson.M{"price": "12.5"})
	req.NoError(err)
	out := doc{}
	req.NoError(bson.UnmarshalWithRegistry(reg, raw, &out))
	req.True(decimal.RequireFromString("12.5").Equal(out.Price))

	raw, err = bson.Marshal(bson.M{"price": int64(7)})
	req.NoError(err)
	req.NoError(bson.UnmarshalWithRegistry(reg, raw, &out))
	req.True(decimal.NewFromInt(7).Equal(out.Price))
}
