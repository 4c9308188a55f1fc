package horizon

import (
	"context"
	"strconv"
)

// TradesRequestBuilder targets /trades, optionally filtered to one asset
// pair.
type TradesRequestBuilder struct {
	requestBuilder
}

func (b *TradesRequestBuilder) BaseAsset(a Asset) *TradesRequestBuilder {
	a.addToQuery(b.params, "base")
	return b
}

func (b *TradesRequestBuilder) CounterAsset(a Asset) *TradesRequestBuilder {
	a.addToQuery(b.params, "counter")
	return b
}

func (b *TradesRequestBuilder) Cursor(cursor string) *TradesRequestBuilder {
	b.setParam("cursor", cursor)
	return b
}

func (b *TradesRequestBuilder) Limit(limit int) *TradesRequestBuilder {
	b.setParam("limit", strconv.Itoa(limit))
	return b
}

func (b *TradesRequestBuilder) Order(order string) *TradesRequestBuilder {
	b.setParam("order", order)
	return b
}

func (b *TradesRequestBuilder) Execute(ctx context.Context) (*TradesPage, error) {
	page := &TradesPage{}
	if err := b.execute(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

type TradesPage struct {
	Embedded struct {
		Records []Trade `json:"records"`
	} `json:"_embedded"`
}

type Trade struct {
	ID                 string `json:"id"`
	PagingToken        string `json:"paging_token"`
	LedgerCloseTime    string `json:"ledger_close_time"`
	TradeType          string `json:"trade_type"`
	BaseAmount         string `json:"base_amount"`
	BaseAssetType      string `json:"base_asset_type"`
	BaseAssetCode      string `json:"base_asset_code,omitempty"`
	BaseAssetIssuer    string `json:"base_asset_issuer,omitempty"`
	CounterAmount      string `json:"counter_amount"`
	CounterAssetType   string `json:"counter_asset_type"`
	CounterAssetCode   string `json:"counter_asset_code,omitempty"`
	CounterAssetIssuer string `json:"counter_asset_issuer,omitempty"`
	BaseIsSeller       bool   `json:"base_is_seller"`
	Price              *Price `json:"price,omitempty"`
}

// Price is a trade price as its exact rational. The trades endpoint encodes
// the numerator and denominator as decimal strings.
type Price struct {
	N string `json:"n"`
	D string `json:"d"`
}
