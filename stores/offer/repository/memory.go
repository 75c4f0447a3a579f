package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/offer"
	"github.com/x-xyz/settlement/service/memdb"
)

type memory struct {
	mu     sync.RWMutex
	offers map[int64]offer.Offer
}

func NewMemory() offer.Repo {
	return &memory{offers: map[int64]offer.Offer{}}
}

func (m *memory) put(c ctx.Ctx, o offer.Offer) {
	prev, existed := m.offers[o.Id]
	m.offers[o.Id] = o
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.offers[o.Id] = prev
		} else {
			delete(m.offers, o.Id)
		}
	})
}

func (m *memory) FindOne(c ctx.Ctx, id int64) (*offer.Offer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.offers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (m *memory) FindAll(c ctx.Ctx, optFns ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	opts, err := offer.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	res := []*offer.Offer{}
	for _, o := range m.offers {
		o := o
		if opts.ListingId != nil && o.ListingId != *opts.ListingId {
			continue
		}
		if opts.Offerer != nil && !o.Offerer.Equals(*opts.Offerer) {
			continue
		}
		if opts.Active != nil && o.Active != *opts.Active {
			continue
		}
		if opts.ExpiredBefore != nil && o.Expiration.After(*opts.ExpiredBefore) {
			continue
		}
		res = append(res, &o)
	}
	m.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })

	if opts.Offset != nil {
		if *opts.Offset >= len(res) {
			return []*offer.Offer{}, nil
		}
		res = res[*opts.Offset:]
	}
	if opts.Limit != nil && *opts.Limit > 0 && *opts.Limit < len(res) {
		res = res[:*opts.Limit]
	}
	return res, nil
}

func (m *memory) Insert(c ctx.Ctx, o *offer.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.offers[o.Id]; ok {
		return domain.ErrConflict
	}
	v := *o
	v.Offerer = v.Offerer.ToLower()
	v.Medium = v.Medium.ToLower()
	m.put(c, v)
	return nil
}

func (m *memory) Deactivate(c ctx.Ctx, id int64, disposition offer.Disposition, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[id]
	if !ok || !o.Active {
		return domain.ErrNotFound
	}
	o.Active = false
	o.Disposition = disposition
	o.ClosedAt = &at
	m.put(c, o)
	return nil
}
