package repository

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) auction.BidderRepo {
	return &impl{q}
}

func (im *impl) FindOne(c ctx.Ctx, bidder domain.Address) (*auction.BidderState, error) {
	res := &auction.BidderState{}
	if err := im.q.FindOne(c, domain.TableBidders, bson.M{"_id": bidder.ToLower()}, res); err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "bidder": bidder}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(c ctx.Ctx, s *auction.BidderState) error {
	s.Bidder = s.Bidder.ToLower()
	if err := im.q.Upsert(c, domain.TableBidders, bson.M{"_id": s.Bidder}, s); err != nil {
		c.WithFields(log.Fields{"err": err, "bidder": s.Bidder}).Error("q.Upsert failed")
		return err
	}
	return nil
}

type memory struct {
	mu      sync.RWMutex
	bidders map[domain.Address]auction.BidderState
}

func NewMemory() auction.BidderRepo {
	return &memory{bidders: map[domain.Address]auction.BidderState{}}
}

func (m *memory) FindOne(c ctx.Ctx, bidder domain.Address) (*auction.BidderState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.bidders[bidder.ToLower()]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memory) Upsert(c ctx.Ctx, s *auction.BidderState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := s.Bidder.ToLower()
	prev, existed := m.bidders[key]
	v := *s
	v.Bidder = key
	m.bidders[key] = v
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.bidders[key] = prev
		} else {
			delete(m.bidders, key)
		}
	})
	return nil
}
