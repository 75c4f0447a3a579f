package main

import (
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/offer"
)

type sweeperCfg struct {
	Auction   auction.UseCase
	Offer     offer.UseCase
	BatchSize int
	Workers   int
	Now       func() time.Time
}

type sweepResult struct {
	Finalized []int64
	Expired   []int64
	// Failed counts auctions and offers left untouched because their own transaction failed
	Failed int
}

// sweeper closes auctions past their end time and refunds lapsed offers.
// Items that fail stay in the store and are paged past, so they never hold
// back the rest of the sweep. They are retried on the next sweep.
type sweeper struct {
	auction   auction.UseCase
	offer     offer.UseCase
	batchSize int
	workers   int
	now       func() time.Time
}

func newSweeper(cfg sweeperCfg) *sweeper {
	s := &sweeper{
		auction:   cfg.Auction,
		offer:     cfg.Offer,
		batchSize: cfg.BatchSize,
		workers:   cfg.Workers,
		now:       cfg.Now,
	}
	if s.batchSize <= 0 {
		s.batchSize = 100
	}
	if s.workers <= 0 {
		s.workers = 1
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// sweep returns an error only when a query fails or the marketplace is paused
func (s *sweeper) sweep(c ctx.Ctx) (*sweepResult, error) {
	res := &sweepResult{Finalized: []int64{}, Expired: []int64{}}
	if err := s.finalizeAuctions(c, res); err != nil {
		return res, err
	}
	if err := s.expireOffers(c, res); err != nil {
		return res, err
	}
	return res, nil
}

func (s *sweeper) finalizeAuctions(c ctx.Ctx, res *sweepResult) error {
	// finalized auctions leave the result set, failed ones stay and are skipped
	offset := 0
	for {
		ended, err := s.auction.FindEnded(c, offset, s.batchSize)
		if err != nil {
			c.WithField("err", err).Error("auction.FindEnded failed")
			return err
		}
		if len(ended) == 0 {
			return nil
		}

		failed, err := s.finalizeBatch(c, ended, res)
		if err != nil {
			return err
		}
		res.Failed += failed
		offset += failed
		if len(ended) < s.batchSize {
			return nil
		}
	}
}

func (s *sweeper) finalizeBatch(c ctx.Ctx, ended []*listing.Listing, res *sweepResult) (int, error) {
	b := goroutines.NewBatch(s.workers, goroutines.WithBatchSize(len(ended)))
	defer b.Close()
	for _, l := range ended {
		id := l.Id
		b.Queue(func() (interface{}, error) {
			if _, err := s.auction.Finalize(c, id); err != nil {
				c.WithFields(log.Fields{"err": err, "listingId": id}).Warn("auction.Finalize failed")
				return id, err
			}
			return id, nil
		})
	}
	b.QueueComplete()

	failed := 0
	paused := false
	for ret := range b.Results() {
		if ret.Error() != nil {
			failed++
			paused = paused || xerrors.Is(ret.Error(), domain.ErrPaused)
			continue
		}
		res.Finalized = append(res.Finalized, ret.Value().(int64))
	}
	if paused {
		return failed, domain.ErrPaused
	}
	return failed, nil
}

func (s *sweeper) expireOffers(c ctx.Ctx, res *sweepResult) error {
	offset := 0
	for {
		lapsed, err := s.offer.FindAll(c,
			offer.WithActive(true),
			offer.WithExpiredBefore(s.now()),
			offer.WithPagination(offset, s.batchSize),
		)
		if err != nil {
			c.WithField("err", err).Error("offer.FindAll failed")
			return err
		}
		if len(lapsed) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(lapsed))
		for _, o := range lapsed {
			ids = append(ids, o.Id)
		}
		expired, err := s.offer.Expire(c, ids)
		if xerrors.Is(err, domain.ErrPaused) {
			return err
		} else if err != nil {
			c.WithFields(log.Fields{"err": err, "offerIds": ids}).Warn("offer.Expire partially failed")
		}
		res.Expired = append(res.Expired, expired...)

		failed := len(ids) - len(expired)
		res.Failed += failed
		offset += failed
		if len(lapsed) < s.batchSize {
			return nil
		}
	}
}
