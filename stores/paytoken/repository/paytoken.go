package repository

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/query"
)

type payTokenMongoRepo struct {
	q query.Mongo
}

func NewPayTokenRepo(q query.Mongo) domain.PayTokenRepo {
	return &payTokenMongoRepo{
		q: q,
	}
}

func (r *payTokenMongoRepo) FindAll(ctx bCtx.Ctx) ([]*domain.PayToken, error) {
	res := []*domain.PayToken{}
	if err := r.q.Search(ctx, domain.TablePayTokens, 0, 0, "symbol", bson.M{}, &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *payTokenMongoRepo) FindOne(ctx bCtx.Ctx, tokenAddress domain.Address) (*domain.PayToken, error) {
	payToken := &domain.PayToken{}
	if qry, err := mongoclient.MakeBsonM(&domain.PayTokenId{Address: tokenAddress.ToLower()}); err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := r.q.FindOne(ctx, domain.TablePayTokens, qry, payToken); err != nil && err != query.ErrNotFound {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	} else if err == query.ErrNotFound {
		return nil, nil
	}
	return payToken, nil
}

func (r *payTokenMongoRepo) Upsert(ctx bCtx.Ctx, payToken *domain.PayToken) error {
	selector, err := mongoclient.MakeBsonM(payToken.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("failed to make bson.M")
		return err
	}
	if err := r.q.Upsert(ctx, domain.TablePayTokens, selector, payToken); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  payToken.ToId(),
		}).Error("failed to update")
		return err
	}
	return nil
}

type payTokenMemoryRepo struct {
	mu     sync.RWMutex
	tokens map[domain.Address]domain.PayToken
}

func NewPayTokenMemoryRepo() domain.PayTokenRepo {
	return &payTokenMemoryRepo{tokens: map[domain.Address]domain.PayToken{}}
}

func (r *payTokenMemoryRepo) FindAll(ctx bCtx.Ctx) ([]*domain.PayToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := []*domain.PayToken{}
	for _, t := range r.tokens {
		t := t
		res = append(res, &t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Symbol < res[j].Symbol })
	return res, nil
}

func (r *payTokenMemoryRepo) FindOne(ctx bCtx.Ctx, tokenAddress domain.Address) (*domain.PayToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[tokenAddress.ToLower()]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *payTokenMemoryRepo) Upsert(ctx bCtx.Ctx, payToken *domain.PayToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := payToken.Address.ToLower()
	prev, existed := r.tokens[key]
	r.tokens[key] = *payToken
	memdb.Record(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if existed {
			r.tokens[key] = prev
		} else {
			delete(r.tokens, key)
		}
	})
	return nil
}
