// Package discord posts settled sales to a discord channel.
package discord

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
)

// Sender is the part of a discord session the notifier needs
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type NotifierConfig struct {
	BotKey    string
	ChannelId string
	// AssetUrl formats collection and token id into a link, e.g. "https://x.xyz/asset/%s/%s"
	AssetUrl string
	Paytoken domain.PayTokenRepo
}

type notifier struct {
	config NotifierConfig
	sender Sender
}

// New opens a bot session for config.BotKey
func New(config NotifierConfig) (activity.Publisher, error) {
	session, err := discordgo.New(fmt.Sprintf("Bot %s", config.BotKey))
	if err != nil {
		return nil, err
	}
	return NewWithSender(config, session), nil
}

func NewWithSender(config NotifierConfig, sender Sender) activity.Publisher {
	return &notifier{config: config, sender: sender}
}

func (n *notifier) Publish(c ctx.Ctx, activities []*activity.ActivityHistory) {
	for _, a := range activities {
		if a.Type != activity.ActivityHistoryTypeSale {
			continue
		}
		if err := n.notifySale(c, a); err != nil {
			c.WithFields(log.Fields{"err": err, "listingId": a.ListingId}).Warn("failed to notify sale")
		}
	}
}

func (n *notifier) formatPrice(c ctx.Ctx, medium domain.Address, price decimal.Decimal) string {
	token, err := n.config.Paytoken.FindOne(c, medium)
	if err != nil || token == nil {
		c.WithField("medium", medium).Warn("unknown token")
		return price.String()
	}
	formatted, _ := price.Shift(-token.TokenDecimals).Float64()
	return fmt.Sprintf("%s %s", strconv.FormatFloat(formatted, 'f', -1, 64), token.Symbol)
}

func (n *notifier) notifySale(c ctx.Ctx, a *activity.ActivityHistory) error {
	msg := &discordgo.MessageEmbed{
		Title:       "Item sold!",
		Description: fmt.Sprintf(n.config.AssetUrl, a.Collection, a.TokenId),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(a.Account)},
			{Name: "Buyer", Value: string(a.To)},
			{Name: "Price", Value: n.formatPrice(c, a.Medium, a.Price)},
		},
	}

	if _, err := n.sender.ChannelMessageSendEmbed(n.config.ChannelId, msg); err != nil {
		return err
	}
	return nil
}
