package market

import (
	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
)

// EventBus topics published by the market.
const (
	// TopicFRDistributed fires on every priced sale and zero-profit
	// transfer, even when the royalty pool is zero, so subscribers can
	// distinguish "sale with no royalty" from "no sale".
	TopicFRDistributed = "nfr:distributed"

	// TopicFRClaimed fires on every successful release.
	TopicFRClaimed = "nfr:claimed"
)

// FRDistributed is the payload published on TopicFRDistributed.
type FRDistributed struct {
	AssetID   asset.AssetID
	SalePrice fixmath.Dec
	Royalty   fixmath.Dec
}

// FRClaimed is the payload published on TopicFRClaimed.
type FRClaimed struct {
	Owner  asset.OwnerID
	Amount fixmath.Dec
}
