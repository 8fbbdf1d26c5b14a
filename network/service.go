// Package network exposes the market orchestrator over JSON-RPC. Callers
// are identified by a caller field in each request; authenticating that
// identity is the deployment's concern, not this package's.
package network

import (
	"fmt"
	"net/http"

	"github.com/untrading/libnfr-go/asset"
	"github.com/untrading/libnfr-go/fixmath"
	"github.com/untrading/libnfr-go/market"
	"github.com/untrading/libnfr-go/royalty"
)

// Name is the JSON-RPC namespace the service registers under, so methods
// are invoked as "nfr.Mint", "nfr.Buy" and so on.
const Name = "nfr"

// Service is the RPC handler wrapping a market.
type Service struct {
	market *market.Market
}

// NewService creates the RPC service.
func NewService(m *market.Market) (*Service, error) {
	if m == nil {
		return nil, ErrNilMarket
	}
	return &Service{market: m}, nil
}

// FRInfoArgs carries the royalty parameters of a mint or default-set call.
type FRInfoArgs struct {
	NumGenerations  uint32 `json:"numGenerations"`
	PercentOfProfit string `json:"percentOfProfit"`
	SuccessiveRatio string `json:"successiveRatio"`
}

// MintArgs is the request for Mint.
type MintArgs struct {
	Caller string `json:"caller"`
	Owner  string `json:"owner"`
	FRInfoArgs
}

// MintReply is the response for Mint and MintWithDefault.
type MintReply struct {
	AssetID string `json:"assetId"`
}

// Mint creates an asset with explicit royalty parameters.
func (s *Service) Mint(_ *http.Request, args *MintArgs, reply *MintReply) error {
	caller, err := asset.ParseOwnerID(args.Caller)
	if err != nil {
		return err
	}
	owner, err := asset.ParseOwnerID(args.Owner)
	if err != nil {
		return err
	}
	info, err := parseFRInfo(args.FRInfoArgs)
	if err != nil {
		return err
	}

	id, err := s.market.Mint(caller, owner, info)
	if err != nil {
		return err
	}
	reply.AssetID = id.Hex()
	return nil
}

// MintWithDefaultArgs is the request for MintWithDefault.
type MintWithDefaultArgs struct {
	Caller string `json:"caller"`
	Owner  string `json:"owner"`
}

// MintWithDefault creates an asset with the configured default parameters.
func (s *Service) MintWithDefault(_ *http.Request, args *MintWithDefaultArgs, reply *MintReply) error {
	caller, err := asset.ParseOwnerID(args.Caller)
	if err != nil {
		return err
	}
	owner, err := asset.ParseOwnerID(args.Owner)
	if err != nil {
		return err
	}

	id, err := s.market.MintWithDefault(caller, owner)
	if err != nil {
		return err
	}
	reply.AssetID = id.Hex()
	return nil
}

// SetDefaultFRInfoReply is the empty response for SetDefaultFRInfo.
type SetDefaultFRInfoReply struct{}

// SetDefaultFRInfo configures the default mint parameters.
func (s *Service) SetDefaultFRInfo(_ *http.Request, args *FRInfoArgs, _ *SetDefaultFRInfoReply) error {
	info, err := parseFRInfo(*args)
	if err != nil {
		return err
	}
	return s.market.SetDefaultFRInfo(info)
}

// BurnArgs is the request for Burn.
type BurnArgs struct {
	Caller  string `json:"caller"`
	AssetID string `json:"assetId"`
}

// BurnReply is the empty response for Burn.
type BurnReply struct{}

// Burn destroys an asset and its royalty state.
func (s *Service) Burn(_ *http.Request, args *BurnArgs, _ *BurnReply) error {
	caller, err := asset.ParseOwnerID(args.Caller)
	if err != nil {
		return err
	}
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	return s.market.Burn(caller, id)
}

// ListArgs is the request for List.
type ListArgs struct {
	Caller  string `json:"caller"`
	AssetID string `json:"assetId"`
	Price   string `json:"price"`
}

// ListReply is the empty response for List.
type ListReply struct{}

// List offers an asset for sale.
func (s *Service) List(_ *http.Request, args *ListArgs, _ *ListReply) error {
	caller, err := asset.ParseOwnerID(args.Caller)
	if err != nil {
		return err
	}
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	price, err := parseAmount(args.Price)
	if err != nil {
		return err
	}
	return s.market.List(caller, id, price)
}

// UnlistArgs is the request for Unlist.
type UnlistArgs struct {
	Caller  string `json:"caller"`
	AssetID string `json:"assetId"`
}

// UnlistReply is the empty response for Unlist.
type UnlistReply struct{}

// Unlist withdraws an asset's listing.
func (s *Service) Unlist(_ *http.Request, args *UnlistArgs, _ *UnlistReply) error {
	caller, err := asset.ParseOwnerID(args.Caller)
	if err != nil {
		return err
	}
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	return s.market.Unlist(caller, id)
}

// BuyArgs is the request for Buy.
type BuyArgs struct {
	Buyer   string `json:"buyer"`
	AssetID string `json:"assetId"`
	Paid    string `json:"paid"`
}

// BuyReply is the empty response for Buy.
type BuyReply struct{}

// Buy purchases a listed asset.
func (s *Service) Buy(_ *http.Request, args *BuyArgs, _ *BuyReply) error {
	buyer, err := asset.ParseOwnerID(args.Buyer)
	if err != nil {
		return err
	}
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	paid, err := parseAmount(args.Paid)
	if err != nil {
		return err
	}
	return s.market.Buy(buyer, id, paid)
}

// TransferWithPriceArgs is the request for TransferWithPrice.
type TransferWithPriceArgs struct {
	Caller  string `json:"caller"`
	From    string `json:"from"`
	To      string `json:"to"`
	AssetID string `json:"assetId"`
	Price   string `json:"price"`
	Paid    string `json:"paid"`
}

// TransferReply is the empty response for the transfer methods.
type TransferReply struct{}

// TransferWithPrice performs a direct priced sale.
func (s *Service) TransferWithPrice(_ *http.Request, args *TransferWithPriceArgs, _ *TransferReply) error {
	caller, err := asset.ParseOwnerID(args.Caller)
	if err != nil {
		return err
	}
	from, err := asset.ParseOwnerID(args.From)
	if err != nil {
		return err
	}
	to, err := asset.ParseOwnerID(args.To)
	if err != nil {
		return err
	}
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	price, err := parseAmount(args.Price)
	if err != nil {
		return err
	}
	paid, err := parseAmount(args.Paid)
	if err != nil {
		return err
	}
	return s.market.TransferWithPrice(caller, from, to, id, price, paid)
}

// TransferZeroProfitArgs is the request for TransferZeroProfit.
type TransferZeroProfitArgs struct {
	Caller  string `json:"caller"`
	From    string `json:"from"`
	To      string `json:"to"`
	AssetID string `json:"assetId"`
}

// TransferZeroProfit performs a plain no-price ownership transfer.
func (s *Service) TransferZeroProfit(_ *http.Request, args *TransferZeroProfitArgs, _ *TransferReply) error {
	caller, err := asset.ParseOwnerID(args.Caller)
	if err != nil {
		return err
	}
	from, err := asset.ParseOwnerID(args.From)
	if err != nil {
		return err
	}
	to, err := asset.ParseOwnerID(args.To)
	if err != nil {
		return err
	}
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	return s.market.TransferZeroProfit(caller, from, to, id)
}

// ReleaseArgs is the request for Release.
type ReleaseArgs struct {
	Owner string `json:"owner"`
}

// ReleaseReply carries the released amount.
type ReleaseReply struct {
	Amount string `json:"amount"`
}

// Release withdraws the owner's accumulated royalty balance.
func (s *Service) Release(_ *http.Request, args *ReleaseArgs, reply *ReleaseReply) error {
	owner, err := asset.ParseOwnerID(args.Owner)
	if err != nil {
		return err
	}
	amount, err := s.market.ReleaseFR(owner)
	if err != nil {
		return err
	}
	reply.Amount = amount.String()
	return nil
}

// FRInfoQueryArgs is the request for FRInfo.
type FRInfoQueryArgs struct {
	AssetID string `json:"assetId"`
}

// FRInfoReply is the full royalty state of an asset.
type FRInfoReply struct {
	NumGenerations  uint32   `json:"numGenerations"`
	PercentOfProfit string   `json:"percentOfProfit"`
	SuccessiveRatio string   `json:"successiveRatio"`
	LastSoldPrice   string   `json:"lastSoldPrice"`
	OwnerAmount     uint64   `json:"ownerAmount"`
	AddressesInFR   []string `json:"addressesInFR"`
}

// FRInfo returns the asset's royalty record.
func (s *Service) FRInfo(_ *http.Request, args *FRInfoQueryArgs, reply *FRInfoReply) error {
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	rec, err := s.market.RetrieveFRInfo(id)
	if err != nil {
		return err
	}

	reply.NumGenerations = rec.NumGenerations
	reply.PercentOfProfit = rec.PercentOfProfit.String()
	reply.SuccessiveRatio = rec.SuccessiveRatio.String()
	reply.LastSoldPrice = rec.LastSoldPrice.String()
	reply.OwnerAmount = rec.OwnerCount
	reply.AddressesInFR = make([]string, len(rec.Window))
	for i, o := range rec.Window {
		reply.AddressesInFR[i] = o.Hex()
	}
	return nil
}

// AllottedArgs is the request for Allotted.
type AllottedArgs struct {
	Owner string `json:"owner"`
}

// AllottedReply carries an owner's claimable balance.
type AllottedReply struct {
	Amount string `json:"amount"`
}

// Allotted returns the owner's accumulated claimable balance.
func (s *Service) Allotted(_ *http.Request, args *AllottedArgs, reply *AllottedReply) error {
	owner, err := asset.ParseOwnerID(args.Owner)
	if err != nil {
		return err
	}
	amount, err := s.market.RetrieveAllottedFR(owner)
	if err != nil {
		return err
	}
	reply.Amount = amount.String()
	return nil
}

// ListInfoArgs is the request for ListInfo.
type ListInfoArgs struct {
	AssetID string `json:"assetId"`
}

// ListInfoReply is the listing state of an asset.
type ListInfoReply struct {
	Price  string `json:"price"`
	Seller string `json:"seller"`
	Active bool   `json:"active"`
}

// ListInfo returns the asset's listing.
func (s *Service) ListInfo(_ *http.Request, args *ListInfoArgs, reply *ListInfoReply) error {
	id, err := asset.ParseAssetID(args.AssetID)
	if err != nil {
		return err
	}
	l, err := s.market.RetrieveListInfo(id)
	if err != nil {
		return err
	}
	reply.Price = l.Price.String()
	reply.Seller = l.Seller.Hex()
	reply.Active = l.Active
	return nil
}

// parseFRInfo converts wire parameters to a royalty.FRInfo.
func parseFRInfo(args FRInfoArgs) (royalty.FRInfo, error) {
	percent, err := parseAmount(args.PercentOfProfit)
	if err != nil {
		return royalty.FRInfo{}, err
	}
	ratio, err := parseAmount(args.SuccessiveRatio)
	if err != nil {
		return royalty.FRInfo{}, err
	}
	return royalty.FRInfo{
		NumGenerations:  args.NumGenerations,
		PercentOfProfit: percent,
		SuccessiveRatio: ratio,
	}, nil
}

// parseAmount converts a wire decimal string to a fixmath.Dec.
func parseAmount(s string) (fixmath.Dec, error) {
	d, err := fixmath.Parse(s)
	if err != nil {
		return fixmath.Dec{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return d, nil
}
