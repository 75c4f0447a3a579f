package repository

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/settlement"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(c ctx.Ctx, q query.Mongo) (settlement.Repo, error) {
	if err := q.EnsureIndexes(c, domain.TableSales, []mongo.IndexModel{
		{Keys: bson.D{{Key: "listingId", Value: 1}}},
		{Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "seller", Value: 1}, {Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "time", Value: -1}}},
	}); err != nil {
		return nil, err
	}
	return &impl{q}, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*settlement.Sale, error) {
	res := &settlement.Sale{}
	if err := im.q.FindOne(c, domain.TableSales, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...settlement.FindAllOptionsFunc) ([]*settlement.Sale, error) {
	opts, err := settlement.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}
	if opts.ListingId != nil {
		qry["listingId"] = *opts.ListingId
	}
	if opts.Buyer != nil {
		qry["buyer"] = *opts.Buyer
	}
	if opts.Seller != nil {
		qry["seller"] = *opts.Seller
	}
	if opts.Collection != nil {
		qry["collection"] = *opts.Collection
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []*settlement.Sale{}
	if err := im.q.Search(c, domain.TableSales, offset, limit, "-time", qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, s *settlement.Sale) error {
	if err := im.q.Insert(c, domain.TableSales, s); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

type memory struct {
	mu    sync.RWMutex
	sales []settlement.Sale
}

func NewMemory() settlement.Repo {
	return &memory{}
}

func (m *memory) FindOne(c ctx.Ctx, id string) (*settlement.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sales {
		if s.Id == id {
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memory) FindAll(c ctx.Ctx, optFns ...settlement.FindAllOptionsFunc) ([]*settlement.Sale, error) {
	opts, err := settlement.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	res := []*settlement.Sale{}
	for _, s := range m.sales {
		s := s
		if opts.ListingId != nil && s.ListingId != *opts.ListingId {
			continue
		}
		if opts.Buyer != nil && !s.Buyer.Equals(*opts.Buyer) {
			continue
		}
		if opts.Seller != nil && !s.Seller.Equals(*opts.Seller) {
			continue
		}
		if opts.Collection != nil && !s.Collection.Equals(*opts.Collection) {
			continue
		}
		res = append(res, &s)
	}
	m.mu.RUnlock()

	sort.SliceStable(res, func(i, j int) bool { return res[i].Time.After(res[j].Time) })

	if opts.Offset != nil {
		if *opts.Offset >= len(res) {
			return []*settlement.Sale{}, nil
		}
		res = res[*opts.Offset:]
	}
	if opts.Limit != nil && *opts.Limit > 0 && *opts.Limit < len(res) {
		res = res[:*opts.Limit]
	}
	return res, nil
}

func (m *memory) Insert(c ctx.Ctx, s *settlement.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sales {
		if existing.Id == s.Id {
			return domain.ErrConflict
		}
	}
	m.sales = append(m.sales, *s)
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.sales {
			if m.sales[i].Id == s.Id {
				m.sales = append(m.sales[:i], m.sales[i+1:]...)
				return
			}
		}
	})
	return nil
}
