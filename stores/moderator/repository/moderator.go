package repository

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/moderator"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) moderator.Repo {
	return &impl{q}
}

func (im *impl) FindAll(c ctx.Ctx) ([]*moderator.Moderator, error) {
	res := []*moderator.Moderator{}

	// to prevent scancol error
	qry := bson.M{"address": bson.M{"$exists": true}}

	if err := im.q.Search(c, domain.TableModerators, 0, 0, "address", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, address domain.Address) (*moderator.Moderator, error) {
	res := &moderator.Moderator{}

	if qry, err := mongoclient.MakeBsonM(&moderator.Moderator{Address: address.ToLower()}); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := im.q.FindOne(c, domain.TableModerators, qry, res); err != nil && err != query.ErrNotFound {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	} else if err == query.ErrNotFound {
		return nil, nil
	}
	return res, nil
}

func (im *impl) Create(c ctx.Ctx, value moderator.Moderator) error {
	if err := im.q.Insert(c, domain.TableModerators, value); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Delete(c ctx.Ctx, address domain.Address) error {
	if slr, err := mongoclient.MakeBsonM(moderator.Moderator{Address: address.ToLower()}); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	} else if err := im.q.Remove(c, domain.TableModerators, slr); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}

type memory struct {
	mu         sync.RWMutex
	moderators map[domain.Address]moderator.Moderator
}

func NewMemory() moderator.Repo {
	return &memory{moderators: map[domain.Address]moderator.Moderator{}}
}

func (m *memory) FindAll(c ctx.Ctx) ([]*moderator.Moderator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []*moderator.Moderator{}
	for _, v := range m.moderators {
		v := v
		res = append(res, &v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Address < res[j].Address })
	return res, nil
}

func (m *memory) FindOne(c ctx.Ctx, address domain.Address) (*moderator.Moderator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.moderators[address.ToLower()]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *memory) Create(c ctx.Ctx, value moderator.Moderator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := value.Address.ToLower()
	if _, ok := m.moderators[key]; ok {
		return domain.ErrConflict
	}
	m.moderators[key] = value
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.moderators, key)
	})
	return nil
}

func (m *memory) Delete(c ctx.Ctx, address domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := address.ToLower()
	prev, ok := m.moderators[key]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.moderators, key)
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.moderators[key] = prev
	})
	return nil
}
