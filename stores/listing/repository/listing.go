package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(c ctx.Ctx, q query.Mongo) (listing.Repo, error) {
	if err := q.EnsureIndexes(c, domain.TableListings, []mongo.IndexModel{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "tokenId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "seller", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "kind", Value: 1}, {Key: "endTime", Value: 1}}},
	}); err != nil {
		return nil, err
	}
	return &impl{q}, nil
}

func (im *impl) FindOne(c ctx.Ctx, id int64) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := im.q.FindOne(c, domain.TableListings, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{}
	if opts.Seller != nil {
		qry["seller"] = *opts.Seller
	}
	if opts.Collection != nil {
		qry["collection"] = *opts.Collection
	}
	if opts.TokenId != nil {
		qry["tokenId"] = *opts.TokenId
	}
	if opts.Status != nil {
		qry["status"] = *opts.Status
	}
	if opts.Kind != nil {
		qry["kind"] = *opts.Kind
	}
	if opts.EndBefore != nil {
		qry["endTime"] = bson.M{"$lte": *opts.EndBefore}
	}

	sort := "_id"
	if opts.SortBy != nil {
		sort = *opts.SortBy
		if opts.SortDir != nil && *opts.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []*listing.Listing{}
	if err := im.q.Search(c, domain.TableListings, offset, limit, sort, qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, l *listing.Listing) error {
	if err := im.q.Insert(c, domain.TableListings, l); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) UpdateIf(c ctx.Ctx, id int64, expected listing.Status, patch listing.Patchable) error {
	update, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithField("err", err).Error("MakeBsonM failed")
		return err
	}
	if len(update) == 0 {
		return nil
	}
	if err := im.q.Patch(c, domain.TableListings, bson.M{"_id": id, "status": expected}, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.Patch failed")
		return err
	}
	return nil
}
