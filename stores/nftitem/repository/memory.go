package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/service/memdb"
)

type memory struct {
	mu    sync.RWMutex
	items map[nftitem.Id]nftitem.NftItem
}

func NewMemory() nftitem.Repo {
	return &memory{items: map[nftitem.Id]nftitem.NftItem{}}
}

func clone(item nftitem.NftItem) *nftitem.NftItem {
	item.Approved = append([]domain.Address{}, item.Approved...)
	return &item
}

func (m *memory) put(c ctx.Ctx, id nftitem.Id, item nftitem.NftItem) {
	prev, existed := m.items[id]
	m.items[id] = item
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.items[id] = prev
		} else {
			delete(m.items, id)
		}
	})
}

func (m *memory) FindOne(c ctx.Ctx, id nftitem.Id) (*nftitem.NftItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(item), nil
}

func (m *memory) FindAll(c ctx.Ctx, owner domain.Address) ([]*nftitem.NftItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []*nftitem.NftItem{}
	for _, item := range m.items {
		if item.Owner.Equals(owner) {
			res = append(res, clone(item))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ToId().String() < res[j].ToId().String()
	})
	return res, nil
}

func (m *memory) Insert(c ctx.Ctx, item *nftitem.NftItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := item.ToId().ToLower()
	if _, ok := m.items[id]; ok {
		return domain.ErrConflict
	}
	m.put(c, id, *clone(*item))
	return nil
}

func (m *memory) UpdateOwner(c ctx.Ctx, id nftitem.Id, from, to domain.Address, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id = id.ToLower()
	item, ok := m.items[id]
	if !ok || !item.Owner.Equals(from) {
		return domain.ErrNotFound
	}
	item.Owner = to.ToLower()
	item.Approved = []domain.Address{}
	item.UpdatedAt = at
	m.put(c, id, item)
	return nil
}

func (m *memory) SetApproved(c ctx.Ctx, id nftitem.Id, approved []domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id = id.ToLower()
	item, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Approved = append([]domain.Address{}, approved...)
	m.put(c, id, item)
	return nil
}
