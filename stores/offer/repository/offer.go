package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/offer"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(c ctx.Ctx, q query.Mongo) (offer.Repo, error) {
	if err := q.EnsureIndexes(c, domain.TableOffers, []mongo.IndexModel{
		{Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "offerer", Value: 1}, {Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "expiration", Value: 1}}},
	}); err != nil {
		return nil, err
	}
	return &impl{q}, nil
}

func (im *impl) FindOne(c ctx.Ctx, id int64) (*offer.Offer, error) {
	res := &offer.Offer{}
	if err := im.q.FindOne(c, domain.TableOffers, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	opts, err := offer.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}
	if opts.ListingId != nil {
		qry["listingId"] = *opts.ListingId
	}
	if opts.Offerer != nil {
		qry["offerer"] = *opts.Offerer
	}
	if opts.Active != nil {
		qry["active"] = *opts.Active
	}
	if opts.ExpiredBefore != nil {
		qry["expiration"] = bson.M{"$lte": *opts.ExpiredBefore}
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []*offer.Offer{}
	if err := im.q.Search(c, domain.TableOffers, offset, limit, "_id", qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, o *offer.Offer) error {
	if err := im.q.Insert(c, domain.TableOffers, o); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Deactivate(c ctx.Ctx, id int64, disposition offer.Disposition, at time.Time) error {
	selector := bson.M{"_id": id, "active": true}
	update := bson.M{"active": false, "disposition": disposition, "closedAt": at}
	if err := im.q.Patch(c, domain.TableOffers, selector, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.Patch failed")
		return err
	}
	return nil
}
