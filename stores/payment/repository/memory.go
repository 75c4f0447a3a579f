package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/service/memdb"
)

type memory struct {
	mu       sync.RWMutex
	accounts map[payment.AccountId]payment.Account
}

func NewMemory() payment.Repo {
	return &memory{accounts: map[payment.AccountId]payment.Account{}}
}

func toLower(id payment.AccountId) payment.AccountId {
	return payment.AccountId{Owner: id.Owner.ToLower(), Medium: id.Medium.ToLower()}
}

func (m *memory) put(c ctx.Ctx, id payment.AccountId, a payment.Account) {
	prev, existed := m.accounts[id]
	m.accounts[id] = a
	memdb.Record(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.accounts[id] = prev
		} else {
			delete(m.accounts, id)
		}
	})
}

func (m *memory) FindOne(c ctx.Ctx, id payment.AccountId) (*payment.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[toLower(id)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memory) FindAll(c ctx.Ctx, owner domain.Address) ([]*payment.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []*payment.Account{}
	for _, a := range m.accounts {
		if a.Owner.Equals(owner) {
			a := a
			res = append(res, &a)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Medium < res[j].Medium })
	return res, nil
}

func (m *memory) Add(c ctx.Ctx, id payment.AccountId, delta decimal.Decimal, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id = toLower(id)
	a, ok := m.accounts[id]
	if !ok {
		a = payment.Account{Owner: id.Owner, Medium: id.Medium, Balance: decimal.Zero}
	}
	next := a.Balance.Add(delta)
	if delta.Sign() < 0 && next.Sign() < 0 {
		return domain.ErrInsufficientFunds
	}
	a.Balance = next
	a.UpdatedAt = at
	m.put(c, id, a)
	return nil
}

func (m *memory) SetFrozen(c ctx.Ctx, id payment.AccountId, frozen bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id = toLower(id)
	a, ok := m.accounts[id]
	if !ok {
		a = payment.Account{Owner: id.Owner, Medium: id.Medium, Balance: decimal.Zero}
	}
	a.Frozen = frozen
	m.put(c, id, a)
	return nil
}
