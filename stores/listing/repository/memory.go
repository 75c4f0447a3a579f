package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/service/memdb"
)

type memory struct {
	mu       sync.RWMutex
	listings map[int64]listing.Listing
}

func NewMemory() listing.Repo {
	return &memory{listings: map[int64]listing.Listing{}}
}

func (m *memory) put(c ctx.Ctx, l listing.Listing) {
	prev, existed := m.listings[l.Id]
	m.listings[l.Id] = l
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.listings[l.Id] = prev
		} else {
			delete(m.listings, l.Id)
		}
	})
}

func (m *memory) FindOne(c ctx.Ctx, id int64) (*listing.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func match(l *listing.Listing, opts listing.FindAllOptions) bool {
	if opts.Seller != nil && !l.Seller.Equals(*opts.Seller) {
		return false
	}
	if opts.Collection != nil && !l.Collection.Equals(*opts.Collection) {
		return false
	}
	if opts.TokenId != nil && l.TokenId != *opts.TokenId {
		return false
	}
	if opts.Status != nil && l.Status != *opts.Status {
		return false
	}
	if opts.Kind != nil && l.Kind != *opts.Kind {
		return false
	}
	if opts.EndBefore != nil && l.EndTime.After(*opts.EndBefore) {
		return false
	}
	return true
}

func less(a, b *listing.Listing, field string) bool {
	switch strings.TrimPrefix(field, "-") {
	case "endTime":
		return a.EndTime.Before(b.EndTime)
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt)
	case "price":
		return a.Price.LessThan(b.Price)
	default:
		return a.Id < b.Id
	}
}

func (m *memory) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	res := []*listing.Listing{}
	for _, l := range m.listings {
		l := l
		if match(&l, opts) {
			res = append(res, &l)
		}
	}
	m.mu.RUnlock()

	field, desc := "_id", false
	if opts.SortBy != nil {
		field = *opts.SortBy
		desc = opts.SortDir != nil && *opts.SortDir == domain.SortDirDesc
	}
	sort.Slice(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if desc {
			a, b = b, a
		}
		if less(a, b, field) {
			return true
		}
		if less(b, a, field) {
			return false
		}
		// ties keep id order so pages stay stable
		return res[i].Id < res[j].Id
	})

	return paginate(res, opts.Offset, opts.Limit), nil
}

func paginate(res []*listing.Listing, offset, limit *int) []*listing.Listing {
	if offset != nil {
		if *offset >= len(res) {
			return []*listing.Listing{}
		}
		res = res[*offset:]
	}
	if limit != nil && *limit > 0 && *limit < len(res) {
		res = res[:*limit]
	}
	return res
}

func (m *memory) Insert(c ctx.Ctx, l *listing.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[l.Id]; ok {
		return domain.ErrConflict
	}
	v := *l
	v.Seller = v.Seller.ToLower()
	v.Collection = v.Collection.ToLower()
	v.Medium = v.Medium.ToLower()
	m.put(c, v)
	return nil
}

func (m *memory) UpdateIf(c ctx.Ctx, id int64, expected listing.Status, patch listing.Patchable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok || l.Status != expected {
		return domain.ErrNotFound
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	if patch.EndTime != nil {
		l.EndTime = *patch.EndTime
	}
	if patch.HighestBidder != nil {
		l.HighestBidder = *patch.HighestBidder
	}
	if patch.HighestBid != nil {
		l.HighestBid = *patch.HighestBid
	}
	if patch.BidCount != nil {
		l.BidCount = *patch.BidCount
	}
	if patch.Extensions != nil {
		l.Extensions = *patch.Extensions
	}
	if patch.Buyer != nil {
		l.Buyer = *patch.Buyer
	}
	if patch.SoldPrice != nil {
		l.SoldPrice = *patch.SoldPrice
	}
	if patch.ClosedAt != nil {
		at := *patch.ClosedAt
		l.ClosedAt = &at
	}
	m.put(c, l)
	return nil
}
