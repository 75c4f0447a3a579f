package repository

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/statistic"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/query"
)

type repo struct {
	q query.Mongo
}

func New(q query.Mongo) statistic.Repo {
	return &repo{q}
}

func (r *repo) FindOne(ctx bCtx.Ctx, id statistic.CollectionStatisticId) (*statistic.CollectionStatistic, error) {
	qry := bson.M{
		"collection": id.Collection.ToLower(),
		"medium":     id.Medium.ToLower(),
	}
	res := &statistic.CollectionStatistic{}
	err := r.q.FindOne(ctx, domain.TableCollectionStats, qry, res)
	if err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *repo) FindAll(ctx bCtx.Ctx, collection domain.Address) ([]*statistic.CollectionStatistic, error) {
	res := []*statistic.CollectionStatistic{}
	if err := r.q.Search(ctx, domain.TableCollectionStats, 0, 0, "medium", bson.M{"collection": collection.ToLower()}, &res); err != nil {
		ctx.WithFields(log.Fields{"err": err, "collection": collection}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *repo) Upsert(ctx bCtx.Ctx, s *statistic.CollectionStatistic) error {
	id := s.ToId()
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("MakeBsonM failed")
		return err
	}
	if err := r.q.Upsert(ctx, domain.TableCollectionStats, selector, s); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

type memory struct {
	mu    sync.RWMutex
	stats map[statistic.CollectionStatisticId]statistic.CollectionStatistic
}

func NewMemory() statistic.Repo {
	return &memory{stats: map[statistic.CollectionStatisticId]statistic.CollectionStatistic{}}
}

func (m *memory) FindOne(ctx bCtx.Ctx, id statistic.CollectionStatisticId) (*statistic.CollectionStatistic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stats[statistic.CollectionStatisticId{Collection: id.Collection.ToLower(), Medium: id.Medium.ToLower()}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memory) FindAll(ctx bCtx.Ctx, collection domain.Address) ([]*statistic.CollectionStatistic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []*statistic.CollectionStatistic{}
	for _, s := range m.stats {
		if s.Collection.Equals(collection) {
			s := s
			res = append(res, &s)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Medium < res[j].Medium })
	return res, nil
}

func (m *memory) Upsert(ctx bCtx.Ctx, s *statistic.CollectionStatistic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := statistic.CollectionStatisticId{Collection: s.Collection.ToLower(), Medium: s.Medium.ToLower()}
	prev, existed := m.stats[id]
	m.stats[id] = *s
	memdb.Record(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.stats[id] = prev
		} else {
			delete(m.stats, id)
		}
	})
	return nil
}
