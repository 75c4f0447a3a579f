package marketplace

import (
	"time"

	"github.com/x-xyz/settlement/base/bps"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

// Config is one version of the marketplace parameters. Versions are append only.
type Config struct {
	Version          int64          `json:"version" bson:"version"`
	FeeBps           int64          `json:"feeBps" bson:"feeBps"`
	FeeRecipient     domain.Address `json:"feeRecipient" bson:"feeRecipient"`
	MaxRoyaltyBps    int64          `json:"maxRoyaltyBps" bson:"maxRoyaltyBps"`
	MinIncrementBps  int64          `json:"minIncrementBps" bson:"minIncrementBps"`
	BidCooldown      time.Duration  `json:"bidCooldown" bson:"bidCooldown"`
	ExtensionWindow  time.Duration  `json:"extensionWindow" bson:"extensionWindow"`
	MinOfferDuration time.Duration  `json:"minOfferDuration" bson:"minOfferDuration"`
	MaxOfferDuration time.Duration  `json:"maxOfferDuration" bson:"maxOfferDuration"`
	Paused           bool           `json:"paused" bson:"paused"`
	UpdatedBy        domain.Address `json:"updatedBy" bson:"updatedBy"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Default returns the parameters used when nothing is configured
func Default(feeRecipient domain.Address) Config {
	return Config{
		FeeBps:           250,
		FeeRecipient:     feeRecipient.ToLower(),
		MaxRoyaltyBps:    1000,
		MinIncrementBps:  500,
		BidCooldown:      60 * time.Second,
		ExtensionWindow:  300 * time.Second,
		MinOfferDuration: 10 * time.Minute,
		MaxOfferDuration: 30 * 24 * time.Hour,
	}
}

// Validate checks the parameters can never produce a negative seller amount
func (cfg *Config) Validate() error {
	if !bps.IsValid(cfg.FeeBps) || !bps.IsValid(cfg.MaxRoyaltyBps) || !bps.IsValid(cfg.MinIncrementBps) {
		return domain.ErrInvalidConfig
	}
	if cfg.FeeBps+cfg.MaxRoyaltyBps >= bps.Denominator {
		return domain.ErrInvalidConfig
	}
	if cfg.FeeBps > 0 && cfg.FeeRecipient.IsEmpty() {
		return domain.ErrInvalidConfig
	}
	if cfg.BidCooldown < 0 || cfg.ExtensionWindow < 0 {
		return domain.ErrInvalidConfig
	}
	if cfg.MinOfferDuration <= 0 || cfg.MinOfferDuration > cfg.MaxOfferDuration {
		return domain.ErrInvalidConfig
	}
	return nil
}

// Patchable holds the fields an admin may change; nil fields keep their value
type Patchable struct {
	FeeBps           *int64          `json:"feeBps"`
	FeeRecipient     *domain.Address `json:"feeRecipient"`
	MaxRoyaltyBps    *int64          `json:"maxRoyaltyBps"`
	MinIncrementBps  *int64          `json:"minIncrementBps"`
	BidCooldown      *time.Duration  `json:"bidCooldown"`
	ExtensionWindow  *time.Duration  `json:"extensionWindow"`
	MinOfferDuration *time.Duration  `json:"minOfferDuration"`
	MaxOfferDuration *time.Duration  `json:"maxOfferDuration"`
	Paused           *bool           `json:"paused"`
}

// Apply returns a copy of cfg with p applied
func (p *Patchable) Apply(cfg Config) Config {
	if p.FeeBps != nil {
		cfg.FeeBps = *p.FeeBps
	}
	if p.FeeRecipient != nil {
		cfg.FeeRecipient = p.FeeRecipient.ToLower()
	}
	if p.MaxRoyaltyBps != nil {
		cfg.MaxRoyaltyBps = *p.MaxRoyaltyBps
	}
	if p.MinIncrementBps != nil {
		cfg.MinIncrementBps = *p.MinIncrementBps
	}
	if p.BidCooldown != nil {
		cfg.BidCooldown = *p.BidCooldown
	}
	if p.ExtensionWindow != nil {
		cfg.ExtensionWindow = *p.ExtensionWindow
	}
	if p.MinOfferDuration != nil {
		cfg.MinOfferDuration = *p.MinOfferDuration
	}
	if p.MaxOfferDuration != nil {
		cfg.MaxOfferDuration = *p.MaxOfferDuration
	}
	if p.Paused != nil {
		cfg.Paused = *p.Paused
	}
	return cfg
}

type Repo interface {
	// FindLatest returns domain.ErrNotFound when no version exists
	FindLatest(c ctx.Ctx) (*Config, error)
	FindVersion(c ctx.Ctx, version int64) (*Config, error)
	// Insert appends cfg; it fails with domain.ErrConflict when the version exists
	Insert(c ctx.Ctx, cfg *Config) error
}

type UseCase interface {
	Get(c ctx.Ctx) (*Config, error)
	GetVersion(c ctx.Ctx, version int64) (*Config, error)
	// EnsureDefault stores defaults as version 1 when nothing is stored
	EnsureDefault(c ctx.Ctx, defaults Config) (*Config, error)
	Update(c ctx.Ctx, caller domain.Address, patch Patchable) (*Config, error)
	Pause(c ctx.Ctx, caller domain.Address) (*Config, error)
	Unpause(c ctx.Ctx, caller domain.Address) (*Config, error)
	// Active returns the latest config and fails with ErrPaused while paused
	Active(c ctx.Ctx) (*Config, error)
}
