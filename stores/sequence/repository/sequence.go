package repository

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/service/query"
)

type sequence struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) domain.SequenceRepo {
	return &impl{q}
}

func (im *impl) Next(c ctx.Ctx, name string) (int64, error) {
	res := &sequence{}
	if err := im.q.IncrementMany(c, domain.TableSequences, bson.M{"_id": name}, bson.M{"value": int64(1)}, nil, res); err != nil {
		c.WithField("err", err).Error("q.IncrementMany failed")
		return 0, err
	}
	return res.Value, nil
}

type memory struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewMemory() domain.SequenceRepo {
	return &memory{values: map[string]int64{}}
}

// Next never reuses a value, even when the transaction that drew it rolls back
func (m *memory) Next(c ctx.Ctx, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name]++
	return m.values[name], nil
}
