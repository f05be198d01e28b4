// Package marketdata defines the quote inputs the pricing and curve
// functions consume, with a provider abstraction so snapshots can come
// from files, feeds or fixtures interchangeably.
package marketdata

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// BondQuote is one secondary-market indicative quote for a Treasury bond.
type BondQuote struct {
	ReferenceDate time.Time `validate:"required"`
	BondType      string    `validate:"required"`
	MaturityDate  time.Time `validate:"required"`
	// IndicativeRate is the ANBIMA indicative yield in decimals.
	IndicativeRate float64 `validate:"gte=-1"`
	// BidRate and AskRate may be NaN when the bond did not trade.
	BidRate float64
	AskRate float64
}

// DIQuote is one DI futures settlement quote.
type DIQuote struct {
	ReferenceDate  time.Time `validate:"required"`
	ExpirationDate time.Time `validate:"required"`
	// SettlementRate is the adjusted closing rate in decimals.
	SettlementRate float64 `validate:"gte=-1"`
}

// RateProvider serves quote snapshots for a reference date. Implementations
// must return quotes already filtered to the requested date and bond type.
type RateProvider interface {
	BondQuotes(referenceDate time.Time, bondType string) ([]BondQuote, error)
	DIQuotes(referenceDate time.Time) ([]DIQuote, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

const dateKeyLayout = "2006-01-02"

// StaticProvider serves quotes from in-memory snapshots keyed by reference
// date. It is the fixture-backed implementation used by the CLI and tests.
type StaticProvider struct {
	bonds map[string][]BondQuote
	di    map[string][]DIQuote
}

// NewStaticProvider validates every quote and indexes them by reference
// date. An invalid quote fails construction rather than surfacing later as
// a pricing anomaly.
func NewStaticProvider(bonds []BondQuote, di []DIQuote) (*StaticProvider, error) {
	p := &StaticProvider{
		bonds: make(map[string][]BondQuote),
		di:    make(map[string][]DIQuote),
	}
	for i, q := range bonds {
		if err := validate.Struct(q); err != nil {
			return nil, fmt.Errorf("marketdata: bond quote %d: %w", i, err)
		}
		key := q.ReferenceDate.Format(dateKeyLayout)
		p.bonds[key] = append(p.bonds[key], q)
	}
	for i, q := range di {
		if err := validate.Struct(q); err != nil {
			return nil, fmt.Errorf("marketdata: DI quote %d: %w", i, err)
		}
		key := q.ReferenceDate.Format(dateKeyLayout)
		p.di[key] = append(p.di[key], q)
	}
	return p, nil
}

// BondQuotes returns the quotes for one reference date, optionally filtered
// by bond type ("" keeps all types).
func (p *StaticProvider) BondQuotes(referenceDate time.Time, bondType string) ([]BondQuote, error) {
	all, ok := p.bonds[referenceDate.Format(dateKeyLayout)]
	if !ok {
		return nil, fmt.Errorf("marketdata: no bond quotes for %s", referenceDate.Format(dateKeyLayout))
	}
	if bondType == "" {
		return all, nil
	}
	var out []BondQuote
	for _, q := range all {
		if q.BondType == bondType {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("marketdata: no %s quotes for %s", bondType, referenceDate.Format(dateKeyLayout))
	}
	return out, nil
}

// DIQuotes returns the DI futures quotes for one reference date.
func (p *StaticProvider) DIQuotes(referenceDate time.Time) ([]DIQuote, error) {
	all, ok := p.di[referenceDate.Format(dateKeyLayout)]
	if !ok {
		return nil, fmt.Errorf("marketdata: no DI quotes for %s", referenceDate.Format(dateKeyLayout))
	}
	return all, nil
}
