package usecase

import (
	"encoding/json"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/base/metrics"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/domain/keys"
	"github.com/x-xyz/settlement/service/redis"
)

var met = metrics.New("activity")

type ActivityUseCaseCfg struct {
	Repo activity.Repo
	// Publishers receive every activity after it is stored
	Publishers []activity.Publisher
}

type impl struct {
	repo       activity.Repo
	publishers []activity.Publisher
}

func New(cfg *ActivityUseCaseCfg) activity.UseCase {
	return &impl{
		repo:       cfg.Repo,
		publishers: cfg.Publishers,
	}
}

// Publish stores the histories and fans them out. Failures are logged only
// since the operations that produced them have committed.
func (im *impl) Publish(c ctx.Ctx, activities []*activity.ActivityHistory) {
	for _, a := range activities {
		if err := im.repo.Insert(c, a); err != nil {
			c.WithFields(log.Fields{"err": err, "type": a.Type, "listingId": a.ListingId}).Error("repo.Insert failed")
		}
		met.BumpSum("published", 1, "type", string(a.Type))
	}
	for _, p := range im.publishers {
		p.Publish(c, activities)
	}
}

func (im *impl) FindAll(c ctx.Ctx, opts ...activity.FindAllOptionsFunc) ([]*activity.ActivityHistory, error) {
	return im.repo.FindAll(c, opts...)
}

type redisPublisher struct {
	redis   redis.Service
	channel string
}

// NewRedisPublisher pushes every activity as json on the activities channel
func NewRedisPublisher(r redis.Service) activity.Publisher {
	return &redisPublisher{redis: r, channel: keys.ChannelActivities}
}

func (p *redisPublisher) Publish(c ctx.Ctx, activities []*activity.ActivityHistory) {
	for _, a := range activities {
		msg, err := json.Marshal(a)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "type": a.Type}).Error("json.Marshal failed")
			continue
		}
		if _, err := p.redis.Publish(c, p.channel, msg); err != nil {
			c.WithFields(log.Fields{"err": err, "type": a.Type}).Warn("redis.Publish failed")
		}
	}
}
