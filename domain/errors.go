package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput   = errors.New("Given Param is not valid")
	ErrInvalidCurrency = errors.New("invalid currency")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")

	// administration
	ErrPaused        = errors.New("marketplace paused")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInvalidConfig = errors.New("invalid marketplace config")

	// listing
	ErrInvalidListing     = errors.New("invalid listing")
	ErrListingNotActive   = errors.New("listing not active")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrAssetAlreadyListed = errors.New("asset already listed")
	ErrCannotBuyOwnItem   = errors.New("cannot buy own item")

	// auction
	ErrAuctionNotActive   = errors.New("auction not active")
	ErrAuctionNotEnded    = errors.New("auction not ended")
	ErrBidTooLow          = errors.New("bid too low")
	ErrBidIncrementTooLow = errors.New("bid increment too low")
	ErrCannotBidOnOwnItem = errors.New("cannot bid on own item")
	ErrBidCooldown        = errors.New("bid cooldown not elapsed")

	// offer
	ErrNotOfferOwner        = errors.New("not offer owner")
	ErrOfferExpired         = errors.New("offer expired")
	ErrOfferInactive        = errors.New("offer inactive")
	ErrInvalidOfferDuration = errors.New("offer duration out of range")
	ErrCannotOfferOwnItem   = errors.New("cannot make offer on own item")

	// custody and payment
	ErrNotAssetHolder    = errors.New("not asset holder")
	ErrAssetNotApproved  = errors.New("asset not approved for custody")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferRejected  = errors.New("transfer rejected by recipient")
)
