package horizon

import (
	"context"
	"strconv"
)

// OrderBookRequestBuilder targets /order_book for one selling/buying pair.
type OrderBookRequestBuilder struct {
	requestBuilder
}

func (b *OrderBookRequestBuilder) SellingAsset(a Asset) *OrderBookRequestBuilder {
	a.addToQuery(b.params, "selling")
	return b
}

func (b *OrderBookRequestBuilder) BuyingAsset(a Asset) *OrderBookRequestBuilder {
	a.addToQuery(b.params, "buying")
	return b
}

// Limit caps the number of price levels per side (Horizon max is 200).
func (b *OrderBookRequestBuilder) Limit(limit int) *OrderBookRequestBuilder {
	b.setParam("limit", strconv.Itoa(limit))
	return b
}

func (b *OrderBookRequestBuilder) Execute(ctx context.Context) (*OrderBookSummary, error) {
	book := &OrderBookSummary{}
	if err := b.execute(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

type OrderBookSummary struct {
	Bids    []PriceLevel `json:"bids"`
	Asks    []PriceLevel `json:"asks"`
	Selling Asset        `json:"base"`
	Buying  Asset        `json:"counter"`
}

type PriceLevel struct {
	PriceR PriceR `json:"price_r"`
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

// PriceR is a level price as the exact rational the ledger stores. Unlike
// trade prices, order book numerators and denominators arrive as JSON
// numbers, not strings.
type PriceR struct {
	N int32 `json:"n"`
	D int32 `json:"d"`
}

// Float converts the rational to a float, 0 when the denominator is 0.
func (p PriceR) Float() float64 {
	if p.D == 0 {
		return 0
	}
	return float64(p.N) / float64(p.D)
}

// BestBid returns the top bid price, 0 when the side is empty.
func (o *OrderBookSummary) BestBid() float64 {
	if len(o.Bids) == 0 {
		return 0
	}
	return o.Bids[0].priceFloat()
}

// BestAsk returns the top ask price, 0 when the side is empty.
func (o *OrderBookSummary) BestAsk() float64 {
	if len(o.Asks) == 0 {
		return 0
	}
	return o.Asks[0].priceFloat()
}

func (l PriceLevel) priceFloat() float64 {
	if f := l.PriceR.Float(); f != 0 {
		return f
	}
	f, _ := strconv.ParseFloat(l.Price, 64)
	return f
}

// SpreadPct is the relative bid/ask spread in percent, 0 when either side is
// empty.
func (o *OrderBookSummary) SpreadPct() float64 {
	bid, ask := o.BestBid(), o.BestAsk()
	if bid <= 0 || ask <= 0 {
		return 0
	}
	return (ask - bid) / ask * 100
}
