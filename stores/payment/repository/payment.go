package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(c ctx.Ctx, q query.Mongo) (payment.Repo, error) {
	if err := q.EnsureIndexes(c, domain.TableAccounts, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "medium", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return nil, err
	}
	return &impl{q}, nil
}

func selector(id payment.AccountId) bson.M {
	return bson.M{"owner": id.Owner.ToLower(), "medium": id.Medium.ToLower()}
}

func (im *impl) FindOne(c ctx.Ctx, id payment.AccountId) (*payment.Account, error) {
	res := &payment.Account{}
	if err := im.q.FindOne(c, domain.TableAccounts, selector(id), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, owner domain.Address) ([]*payment.Account, error) {
	res := []*payment.Account{}
	if err := im.q.Search(c, domain.TableAccounts, 0, 0, "medium", bson.M{"owner": owner.ToLower()}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Add(c ctx.Ctx, id payment.AccountId, delta decimal.Decimal, at time.Time) error {
	qry := selector(id)
	update := bson.M{
		"$inc": bson.M{"balance": mongoclient.Decimal128(delta)},
		"$set": bson.M{"updatedAt": at},
	}

	if delta.Sign() >= 0 {
		update["$setOnInsert"] = bson.M{"frozen": false}
		if err := im.q.CustomPatch(c, domain.TableAccounts, qry, update, true); err != nil {
			c.WithField("err", err).Error("q.CustomPatch failed")
			return err
		}
		return nil
	}

	// debits only match when the balance covers them
	qry["balance"] = bson.M{"$gte": mongoclient.Decimal128(delta.Neg())}
	if err := im.q.CustomPatch(c, domain.TableAccounts, qry, update, false); err == query.ErrNotFound {
		return domain.ErrInsufficientFunds
	} else if err != nil {
		c.WithField("err", err).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

func (im *impl) SetFrozen(c ctx.Ctx, id payment.AccountId, frozen bool) error {
	update := bson.M{
		"$set":         bson.M{"frozen": frozen},
		"$setOnInsert": bson.M{"balance": mongoclient.Decimal128(decimal.Zero)},
	}
	if err := im.q.CustomPatch(c, domain.TableAccounts, selector(id), update, true); err != nil {
		c.WithField("err", err).Error("q.CustomPatch failed")
		return err
	}
	return nil
}
