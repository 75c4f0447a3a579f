package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(c ctx.Ctx, q query.Mongo) (nftitem.Repo, error) {
	if err := q.EnsureIndexes(c, domain.TableNftItems, []mongo.IndexModel{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "tokenId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	}); err != nil {
		return nil, err
	}
	return &impl{q}, nil
}

func selector(id nftitem.Id) bson.M {
	return bson.M{"collection": id.Collection.ToLower(), "tokenId": id.TokenId}
}

func (im *impl) FindOne(c ctx.Ctx, id nftitem.Id) (*nftitem.NftItem, error) {
	res := &nftitem.NftItem{}
	if err := im.q.FindOne(c, domain.TableNftItems, selector(id), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, owner domain.Address) ([]*nftitem.NftItem, error) {
	res := []*nftitem.NftItem{}
	if err := im.q.Search(c, domain.TableNftItems, 0, 0, "tokenId", bson.M{"owner": owner.ToLower()}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, item *nftitem.NftItem) error {
	if err := im.q.Insert(c, domain.TableNftItems, item); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) UpdateOwner(c ctx.Ctx, id nftitem.Id, from, to domain.Address, at time.Time) error {
	qry := selector(id)
	qry["owner"] = from.ToLower()
	update := bson.M{"owner": to.ToLower(), "approved": []domain.Address{}, "updatedAt": at}
	if err := im.q.Patch(c, domain.TableNftItems, qry, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *impl) SetApproved(c ctx.Ctx, id nftitem.Id, approved []domain.Address) error {
	if err := im.q.Patch(c, domain.TableNftItems, selector(id), bson.M{"approved": approved}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}
