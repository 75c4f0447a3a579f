package repository

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(c ctx.Ctx, q query.Mongo) (activity.Repo, error) {
	if err := q.EnsureIndexes(c, domain.TableActivityHistories, []mongo.IndexModel{
		{Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "account", Value: 1}, {Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "time", Value: -1}}},
	}); err != nil {
		return nil, err
	}
	return &impl{q}, nil
}

func (im *impl) Insert(c ctx.Ctx, a *activity.ActivityHistory) error {
	if err := im.q.Insert(c, domain.TableActivityHistories, a); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "type": a.Type}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...activity.FindAllOptionsFunc) ([]*activity.ActivityHistory, error) {
	opts, err := activity.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}
	if opts.ListingId != nil {
		qry["listingId"] = *opts.ListingId
	}
	if opts.Account != nil {
		qry["$or"] = bson.A{bson.M{"account": *opts.Account}, bson.M{"to": *opts.Account}}
	}
	if opts.Collection != nil {
		qry["collection"] = *opts.Collection
	}
	if len(opts.Types) > 0 {
		qry["type"] = bson.M{"$in": opts.Types}
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []*activity.ActivityHistory{}
	if err := im.q.Search(c, domain.TableActivityHistories, offset, limit, "-time", qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

type memory struct {
	mu         sync.RWMutex
	activities []activity.ActivityHistory
}

// NewMemory keeps histories in process. Inserts are not journaled since
// histories are only written after commit.
func NewMemory() activity.Repo {
	return &memory{}
}

func (m *memory) Insert(c ctx.Ctx, a *activity.ActivityHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.activities {
		if existing.Id == a.Id {
			return domain.ErrConflict
		}
	}
	m.activities = append(m.activities, *a)
	return nil
}

func hasType(types []activity.ActivityHistoryType, t activity.ActivityHistoryType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func (m *memory) FindAll(c ctx.Ctx, optFns ...activity.FindAllOptionsFunc) ([]*activity.ActivityHistory, error) {
	opts, err := activity.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	res := []*activity.ActivityHistory{}
	for i := len(m.activities) - 1; i >= 0; i-- {
		a := m.activities[i]
		if opts.ListingId != nil && a.ListingId != *opts.ListingId {
			continue
		}
		if opts.Account != nil && !a.Account.Equals(*opts.Account) && !a.To.Equals(*opts.Account) {
			continue
		}
		if opts.Collection != nil && !a.Collection.Equals(*opts.Collection) {
			continue
		}
		if len(opts.Types) > 0 && !hasType(opts.Types, a.Type) {
			continue
		}
		res = append(res, &a)
	}
	m.mu.RUnlock()

	sort.SliceStable(res, func(i, j int) bool { return res[i].Time.After(res[j].Time) })

	if opts.Offset != nil {
		if *opts.Offset >= len(res) {
			return []*activity.ActivityHistory{}, nil
		}
		res = res[*opts.Offset:]
	}
	if opts.Limit != nil && *opts.Limit > 0 && *opts.Limit < len(res) {
		res = res[:*opts.Limit]
	}
	return res, nil
}
