// Package bootstrap assembles the repositories and usecases of the service
// for a storage driver. It is shared by the api and keeper binaries.
package bootstrap

import (
	"fmt"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/custody"
	"github.com/x-xyz/settlement/domain/keys"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/moderator"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/domain/offer"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/domain/royalty"
	"github.com/x-xyz/settlement/domain/settlement"
	"github.com/x-xyz/settlement/domain/statistic"
	"github.com/x-xyz/settlement/service/cache"
	"github.com/x-xyz/settlement/service/cache/provider"
	"github.com/x-xyz/settlement/service/cache/provider/compound"
	"github.com/x-xyz/settlement/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/settlement/service/cache/provider/redis"
	"github.com/x-xyz/settlement/service/discord"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/service/outbox"
	"github.com/x-xyz/settlement/service/query"
	"github.com/x-xyz/settlement/service/redis"
	activity_repository "github.com/x-xyz/settlement/stores/activity/repository"
	activity_usecase "github.com/x-xyz/settlement/stores/activity/usecase"
	auction_repository "github.com/x-xyz/settlement/stores/auction/repository"
	auction_usecase "github.com/x-xyz/settlement/stores/auction/usecase"
	custody_usecase "github.com/x-xyz/settlement/stores/custody/usecase"
	listing_repository "github.com/x-xyz/settlement/stores/listing/repository"
	listing_usecase "github.com/x-xyz/settlement/stores/listing/usecase"
	marketplace_repository "github.com/x-xyz/settlement/stores/marketplace/repository"
	marketplace_usecase "github.com/x-xyz/settlement/stores/marketplace/usecase"
	moderator_repository "github.com/x-xyz/settlement/stores/moderator/repository"
	moderator_usecase "github.com/x-xyz/settlement/stores/moderator/usecase"
	nftitem_repository "github.com/x-xyz/settlement/stores/nftitem/repository"
	nftitem_usecase "github.com/x-xyz/settlement/stores/nftitem/usecase"
	offer_repository "github.com/x-xyz/settlement/stores/offer/repository"
	offer_usecase "github.com/x-xyz/settlement/stores/offer/usecase"
	payment_repository "github.com/x-xyz/settlement/stores/payment/repository"
	payment_usecase "github.com/x-xyz/settlement/stores/payment/usecase"
	paytoken_repository "github.com/x-xyz/settlement/stores/paytoken/repository"
	paytoken_usecase "github.com/x-xyz/settlement/stores/paytoken/usecase"
	royalty_repository "github.com/x-xyz/settlement/stores/royalty/repository"
	royalty_usecase "github.com/x-xyz/settlement/stores/royalty/usecase"
	sequence_repository "github.com/x-xyz/settlement/stores/sequence/repository"
	settlement_repository "github.com/x-xyz/settlement/stores/settlement/repository"
	settlement_usecase "github.com/x-xyz/settlement/stores/settlement/usecase"
	statistic_repository "github.com/x-xyz/settlement/stores/statistic/repository"
	statistic_usecase "github.com/x-xyz/settlement/stores/statistic/usecase"
)

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

type Config struct {
	// Driver is DriverMemory or DriverMongo
	Driver string
	// Mongo is required by DriverMongo
	Mongo query.Mongo
	// Redis backs the paytoken cache and the activity channel; optional
	Redis redis.Service
	// Operator holds escrowed assets and funds
	Operator domain.Address
	Admins   []domain.Address
	// Marketplace seeds the first config version of an empty store
	Marketplace marketplace.Config
	// Publishers receive activities after they are stored
	Publishers []activity.Publisher
	// Discord adds a sale notifier when set; its Paytoken is filled in here
	Discord  *discord.NotifierConfig
	CacheTtl time.Duration
	Now      func() time.Time
}

type repos struct {
	tx          domain.TxRunner
	sequence    domain.SequenceRepo
	nftitem     nftitem.Repo
	payment     payment.Repo
	royalty     royalty.Repo
	paytoken    domain.PayTokenRepo
	marketplace marketplace.Repo
	moderator   moderator.Repo
	statistic   statistic.Repo
	listing     listing.Repo
	bidder      auction.BidderRepo
	offer       offer.Repo
	sale        settlement.Repo
	activity    activity.Repo
}

func memoryRepos() *repos {
	return &repos{
		tx:          memdb.New(),
		sequence:    sequence_repository.NewMemory(),
		nftitem:     nftitem_repository.NewMemory(),
		payment:     payment_repository.NewMemory(),
		royalty:     royalty_repository.NewMemory(),
		paytoken:    paytoken_repository.NewPayTokenMemoryRepo(),
		marketplace: marketplace_repository.NewMemory(),
		moderator:   moderator_repository.NewMemory(),
		statistic:   statistic_repository.NewMemory(),
		listing:     listing_repository.NewMemory(),
		bidder:      auction_repository.NewMemory(),
		offer:       offer_repository.NewMemory(),
		sale:        settlement_repository.NewMemory(),
		activity:    activity_repository.NewMemory(),
	}
}

func mongoRepos(c ctx.Ctx, q query.Mongo) (*repos, error) {
	r := &repos{
		tx:        q,
		sequence:  sequence_repository.New(q),
		royalty:   royalty_repository.New(q),
		paytoken:  paytoken_repository.NewPayTokenRepo(q),
		moderator: moderator_repository.New(q),
		statistic: statistic_repository.New(q),
		bidder:    auction_repository.New(q),
	}

	var err error
	if r.nftitem, err = nftitem_repository.New(c, q); err != nil {
		return nil, err
	}
	if r.payment, err = payment_repository.New(c, q); err != nil {
		return nil, err
	}
	if r.marketplace, err = marketplace_repository.New(c, q); err != nil {
		return nil, err
	}
	if r.listing, err = listing_repository.New(c, q); err != nil {
		return nil, err
	}
	if r.offer, err = offer_repository.New(c, q); err != nil {
		return nil, err
	}
	if r.sale, err = settlement_repository.New(c, q); err != nil {
		return nil, err
	}
	if r.activity, err = activity_repository.New(c, q); err != nil {
		return nil, err
	}
	return r, nil
}

// App holds every usecase of the service
type App struct {
	Tx          domain.TxRunner
	NftItem     nftitem.UseCase
	Custody     custody.UseCase
	Payment     payment.Rail
	Royalty     royalty.UseCase
	PayToken    domain.PayTokenUsecase
	Marketplace marketplace.UseCase
	Moderator   moderator.Usecase
	Statistic   statistic.UseCase
	Activity    activity.UseCase
	Settlement  settlement.UseCase
	Listing     listing.UseCase
	Auction     auction.UseCase
	Offer       offer.UseCase
}

func New(c ctx.Ctx, cfg Config) (*App, error) {
	var (
		r   *repos
		err error
	)
	switch cfg.Driver {
	case DriverMemory:
		r = memoryRepos()
	case DriverMongo:
		if cfg.Mongo == nil {
			return nil, fmt.Errorf("driver %s without mongo client", cfg.Driver)
		}
		if r, err = mongoRepos(c, cfg.Mongo); err != nil {
			c.WithField("err", err).Error("mongoRepos failed")
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.CacheTtl
	if ttl <= 0 {
		ttl = time.Minute
	}

	publishers := cfg.Publishers
	if cfg.Redis != nil {
		publishers = append(publishers, activity_usecase.NewRedisPublisher(cfg.Redis))
	}
	if cfg.Discord != nil {
		dc := *cfg.Discord
		dc.Paytoken = r.paytoken
		notifier, err := discord.New(dc)
		if err != nil {
			c.WithField("err", err).Error("discord.New failed")
			return nil, err
		}
		publishers = append(publishers, notifier)
	}
	activityUC := activity_usecase.New(&activity_usecase.ActivityUseCaseCfg{
		Repo:       r.activity,
		Publishers: publishers,
	})
	tx := outbox.New(r.tx, activityUC)

	layers := []provider.Provider{primitive.NewPrimitive(keys.PfxPayToken, 16)}
	if cfg.Redis != nil {
		layers = append(layers, redisCache.NewRedis(cfg.Redis))
	}

	moderatorUC := moderator_usecase.New(r.moderator, cfg.Admins)
	nftitemUC := nftitem_usecase.New(&nftitem_usecase.NftItemUseCaseCfg{Repo: r.nftitem, Now: now})
	custodyUC := custody_usecase.New(&custody_usecase.CustodyUseCaseCfg{NftItem: nftitemUC, Operator: cfg.Operator})
	rail := payment_usecase.New(&payment_usecase.RailCfg{Repo: r.payment, Tx: tx, Escrow: cfg.Operator, Now: now})
	royaltyUC := royalty_usecase.New(&royalty_usecase.RoyaltyUseCaseCfg{Repo: r.royalty, Authorizer: moderatorUC, Now: now})
	paytokenUC := paytoken_usecase.NewPayTokenUseCase(&paytoken_usecase.PayTokenUseCaseCfg{
		Repo: r.paytoken,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxPayToken,
			Cache: compound.NewCompound(layers),
		}),
	})
	marketplaceUC := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		Repo:       r.marketplace,
		Tx:         tx,
		Authorizer: moderatorUC,
		Now:        now,
	})
	if _, err := marketplaceUC.EnsureDefault(c, cfg.Marketplace); err != nil {
		return nil, err
	}
	statisticUC := statistic_usecase.New(r.statistic)
	settlementUC := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		Repo:        r.sale,
		Tx:          tx,
		Listing:     r.listing,
		Marketplace: marketplaceUC,
		Royalty:     royaltyUC,
		Rail:        rail,
		Custody:     custodyUC,
		Statistic:   statisticUC,
		Now:         now,
	})

	return &App{
		Tx:          tx,
		NftItem:     nftitemUC,
		Custody:     custodyUC,
		Payment:     rail,
		Royalty:     royaltyUC,
		PayToken:    paytokenUC,
		Marketplace: marketplaceUC,
		Moderator:   moderatorUC,
		Statistic:   statisticUC,
		Activity:    activityUC,
		Settlement:  settlementUC,
		Listing: listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
			Repo:        r.listing,
			Sequence:    r.sequence,
			Tx:          tx,
			Marketplace: marketplaceUC,
			PayToken:    paytokenUC,
			Custody:     custodyUC,
			Rail:        rail,
			Settlement:  settlementUC,
			Authorizer:  moderatorUC,
			Now:         now,
		}),
		Auction: auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
			Listing:     r.listing,
			Bidders:     r.bidder,
			Tx:          tx,
			Marketplace: marketplaceUC,
			Rail:        rail,
			Custody:     custodyUC,
			Settlement:  settlementUC,
			Now:         now,
		}),
		Offer: offer_usecase.New(&offer_usecase.OfferUseCaseCfg{
			Repo:        r.offer,
			Listing:     r.listing,
			Sequence:    r.sequence,
			Tx:          tx,
			Marketplace: marketplaceUC,
			PayToken:    paytokenUC,
			Rail:        rail,
			Settlement:  settlementUC,
			Now:         now,
		}),
	}, nil
}
