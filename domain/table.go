package domain

// Table is a mongo collection name
type Table string

const (
	TableSequences          Table = "sequences"
	TableListings           Table = "listings"
	TableBidders            Table = "bidders"
	TableOffers             Table = "offers"
	TableSales              Table = "sales"
	TableCollectionStats    Table = "collection_statistics"
	TableActivityHistories  Table = "activity_histories"
	TableMarketplaceConfigs Table = "marketplace_configs"
	TableNftItems           Table = "nftitems"
	TableAccounts           Table = "payment_accounts"
	TableRoyalties          Table = "royalties"
	TablePayTokens          Table = "paytokens"
	TableModerators         Table = "moderators"
)
