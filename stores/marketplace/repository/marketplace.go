package repository

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(c ctx.Ctx, q query.Mongo) (marketplace.Repo, error) {
	if err := q.EnsureIndexes(c, domain.TableMarketplaceConfigs, []mongo.IndexModel{
		{Keys: bson.D{{Key: "version", Value: -1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return nil, err
	}
	return &impl{q}, nil
}

func (im *impl) FindLatest(c ctx.Ctx) (*marketplace.Config, error) {
	res := []*marketplace.Config{}
	if err := im.q.Search(c, domain.TableMarketplaceConfigs, 0, 1, "-version", bson.M{}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return res[0], nil
}

func (im *impl) FindVersion(c ctx.Ctx, version int64) (*marketplace.Config, error) {
	res := &marketplace.Config{}
	if err := im.q.FindOne(c, domain.TableMarketplaceConfigs, bson.M{"version": version}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, cfg *marketplace.Config) error {
	if err := im.q.Insert(c, domain.TableMarketplaceConfigs, cfg); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

type memory struct {
	mu       sync.RWMutex
	versions []marketplace.Config
}

func NewMemory() marketplace.Repo {
	return &memory{}
}

func (m *memory) FindLatest(c ctx.Ctx) (*marketplace.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.versions) == 0 {
		return nil, domain.ErrNotFound
	}
	cfg := m.versions[len(m.versions)-1]
	return &cfg, nil
}

func (m *memory) FindVersion(c ctx.Ctx, version int64) (*marketplace.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, cfg := range m.versions {
		if cfg.Version == version {
			cfg := cfg
			return &cfg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memory) Insert(c ctx.Ctx, cfg *marketplace.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.versions); n > 0 && m.versions[n-1].Version >= cfg.Version {
		return domain.ErrConflict
	}
	m.versions = append(m.versions, *cfg)
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.versions = m.versions[:len(m.versions)-1]
	})
	return nil
}
