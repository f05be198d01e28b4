package bond_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmfaria/brfi/bond"
)

// Expected values below come from ANBIMA-published prices for the quoted
// reference dates.

func TestPriceLTN(t *testing.T) {
	p, err := bond.Price(bond.LTN, date(2024, time.July, 5), date(2030, time.January, 1), 0.12145)
	require.NoError(t, err)
	assert.InDelta(t, 535.279902, p, 1e-9)
}

func TestPriceNTNF(t *testing.T) {
	p, err := bond.Price(bond.NTNF, date(2024, time.July, 5), date(2035, time.January, 1), 0.11921)
	require.NoError(t, err)
	assert.InDelta(t, 895.359254, p, 1e-9)
}

func TestPriceInvalidDateOrder(t *testing.T) {
	_, err := bond.Price(bond.LTN, date(2030, time.January, 1), date(2024, time.July, 5), 0.12)
	assert.ErrorIs(t, err, bond.ErrInvalidDateOrder)
}

func TestPriceIndexedTypeRejected(t *testing.T) {
	_, err := bond.Price(bond.NTNB, date(2024, time.May, 31), date(2035, time.May, 15), 0.06)
	assert.Error(t, err)
}

func TestQuotationNTNB(t *testing.T) {
	q, err := bond.Quotation(bond.NTNB, date(2024, time.May, 31), date(2035, time.May, 15), 0.061490)
	require.NoError(t, err)
	assert.InDelta(t, 99.3651, q, 1e-9)

	q, err = bond.Quotation(bond.NTNB, date(2024, time.August, 15), date(2032, time.August, 15), 0.05929)
	require.NoError(t, err)
	assert.InDelta(t, 100.6409, q, 1e-9)
}

func TestQuotationNTNBLongHorizon(t *testing.T) {
	q, err := bond.Quotation(bond.NTNB, date(2024, time.May, 31), date(2060, time.August, 15), 0.061878)
	require.NoError(t, err)
	assert.InDelta(t, 99.5341, q, 1e-4)
}

func TestQuotationLFT(t *testing.T) {
	q, err := bond.Quotation(bond.LFT, date(2024, time.July, 24), date(2030, time.September, 1), 0.001717)
	require.NoError(t, err)
	assert.InDelta(t, 98.9645, q, 1e-9)
}

func TestQuotationFixedTypeRejected(t *testing.T) {
	_, err := bond.Quotation(bond.LTN, date(2024, time.July, 5), date(2030, time.January, 1), 0.12)
	assert.Error(t, err)
}

func TestPriceFromQuotation(t *testing.T) {
	assert.InDelta(t, 4271.864805, bond.PriceFromQuotation(4299.160173, 99.3651), 1e-9)
	assert.InDelta(t, 4343.156412, bond.PriceFromQuotation(4315.498383, 100.6409), 1e-9)
}

func TestQuotationB1(t *testing.T) {
	q, err := bond.QuotationB1(bond.RendaMais, date(2025, time.June, 18), date(2084, time.December, 15), 0.07010)
	require.NoError(t, err)
	assert.InDelta(t, 0.038332, q, 1e-6)
}

func TestPriceB1(t *testing.T) {
	assert.InDelta(t, 164.795407, bond.PriceB1(4299.160173, 0.038332), 1e-9)
}
