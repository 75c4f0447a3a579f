package query

import (
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/domain"
)

const (
	mockTable = domain.Table("query_test")
)

type dummy struct {
	Name  string          `bson:"name"`
	Value decimal.Decimal `bson:"value"`
	Seq   int64           `bson:"seq"`
}

type querySuite struct {
	suite.Suite
	c  ctx.Ctx
	im *impl
}

// Requires a replica set, e.g. MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0
func TestQuerySuite(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	s := &querySuite{c: ctx.Background()}
	s.im = New(mongoclient.MustConnectMongoClient(uri, "admin", "settlement_test", false, true, 1)).(*impl)
	suite.Run(t, s)
}

func (s *querySuite) SetupTest() {
	s.Require().NoError(s.im.coll(mockTable).Drop(s.c))
}

func (s *querySuite) TestInsertFindPatch() {
	s.Require().NoError(s.im.Insert(s.c, mockTable, &dummy{Name: "a", Value: decimal.NewFromInt(10)}))

	res := dummy{}
	s.Require().NoError(s.im.FindOne(s.c, mockTable, bson.M{"name": "a"}, &res))
	s.True(decimal.NewFromInt(10).Equal(res.Value))

	s.Equal(ErrNotFound, s.im.FindOne(s.c, mockTable, bson.M{"name": "b"}, &res))
	s.Equal(ErrNotFound, s.im.Patch(s.c, mockTable, bson.M{"name": "b"}, bson.M{"seq": 1}))
	s.NoError(s.im.Patch(s.c, mockTable, bson.M{"name": "a"}, bson.M{"seq": 1}))
}

func (s *querySuite) TestIncrementMany() {
	res := dummy{}
	s.Require().NoError(s.im.IncrementMany(s.c, mockTable, bson.M{"name": "seq"}, bson.M{"seq": int64(1)}, nil, &res))
	s.Equal(int64(1), res.Seq)
	s.Require().NoError(s.im.IncrementMany(s.c, mockTable, bson.M{"name": "seq"}, bson.M{"seq": int64(1)}, nil, &res))
	s.Equal(int64(2), res.Seq)
}

func (s *querySuite) TestTransactionRollback() {
	// collections cannot be created implicitly inside a transaction on older servers
	s.Require().NoError(s.im.Insert(s.c, mockTable, &dummy{Name: "seed"}))

	errBoom := errors.New("boom")
	err := s.im.RunWithTransaction(s.c, func(c ctx.Ctx) error {
		if err := s.im.Insert(c, mockTable, &dummy{Name: "in-tx"}); err != nil {
			return err
		}
		return s.im.RunWithTransaction(c, func(c ctx.Ctx) error {
			return errBoom
		})
	})
	s.ErrorIs(err, errBoom)

	cnt, err := s.im.Count(s.c, mockTable, bson.M{"name": "in-tx"})
	s.NoError(err)
	s.Equal(0, cnt)
}
