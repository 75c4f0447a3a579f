package repository

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/royalty"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) royalty.Repo {
	return &impl{q}
}

func (im *impl) FindOne(c ctx.Ctx, collection domain.Address) (*royalty.Royalty, error) {
	res := &royalty.Royalty{}
	if err := im.q.FindOne(c, domain.TableRoyalties, bson.M{"collection": collection.ToLower()}, res); err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(c ctx.Ctx, r *royalty.Royalty) error {
	if err := im.q.Upsert(c, domain.TableRoyalties, bson.M{"collection": r.Collection.ToLower()}, r); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) Delete(c ctx.Ctx, collection domain.Address) error {
	if err := im.q.Remove(c, domain.TableRoyalties, bson.M{"collection": collection.ToLower()}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}

type memory struct {
	mu        sync.RWMutex
	royalties map[domain.Address]royalty.Royalty
}

func NewMemory() royalty.Repo {
	return &memory{royalties: map[domain.Address]royalty.Royalty{}}
}

func (m *memory) FindOne(c ctx.Ctx, collection domain.Address) (*royalty.Royalty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.royalties[collection.ToLower()]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memory) set(c ctx.Ctx, key domain.Address, r *royalty.Royalty) {
	prev, existed := m.royalties[key]
	if r == nil {
		delete(m.royalties, key)
	} else {
		m.royalties[key] = *r
	}
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.royalties[key] = prev
		} else {
			delete(m.royalties, key)
		}
	})
}

func (m *memory) Upsert(c ctx.Ctx, r *royalty.Royalty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(c, r.Collection.ToLower(), r)
	return nil
}

func (m *memory) Delete(c ctx.Ctx, collection domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := collection.ToLower()
	if _, ok := m.royalties[key]; !ok {
		return domain.ErrNotFound
	}
	m.set(c, key, nil)
	return nil
}
