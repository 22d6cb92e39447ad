package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/invoicing/internal/models"
)

type stubCatalog struct {
	products map[uint]models.Product
}

func (s stubCatalog) FindProduct(id uint) (models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, &ProductNotFoundError{ProductID: id}
	}
	return p, nil
}

func testCatalog() stubCatalog {
	return stubCatalog{products: map[uint]models.Product{
		1: {ID: 1, Name: "Widget A", Price: decimal.NewFromFloat(10.0)},
		3: {ID: 3, Name: "Gadget X", Price: decimal.NewFromFloat(50.0)},
		7: {ID: 7, Name: "Oddment", Price: decimal.NewFromFloat(19.99)},
	}}
}

func TestPriceComputesTotals(t *testing.T) {
	p := NewPricer(testCatalog(), decimal.NewFromFloat(0.10))

	out, err := p.Price([]LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)

	require.True(t, out.Subtotal.Equal(decimal.NewFromFloat(70.0)), "subtotal=%s", out.Subtotal)
	require.True(t, out.Tax.Equal(decimal.NewFromFloat(7.0)), "tax=%s", out.Tax)
	require.True(t, out.Total.Equal(decimal.NewFromFloat(77.0)), "total=%s", out.Total)

	// lines preserve input order and snapshot name + price
	require.Equal(t, "Widget A", out.Lines[0].ProductName)
	require.Equal(t, 2, out.Lines[0].Quantity)
	require.True(t, out.Lines[0].LineTotal.Equal(decimal.NewFromFloat(20.0)))
	require.Equal(t, "Gadget X", out.Lines[1].ProductName)
	require.True(t, out.Lines[1].UnitPrice.Equal(decimal.NewFromFloat(50.0)))
}

func TestPriceEmptyItems(t *testing.T) {
	p := NewPricer(testCatalog(), decimal.NewFromFloat(0.10))
	_, err := p.Price(nil)
	require.ErrorIs(t, err, ErrEmptyItems)
	_, err = p.Price([]LineRequest{})
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestPriceInvalidQuantity(t *testing.T) {
	p := NewPricer(testCatalog(), decimal.NewFromFloat(0.10))
	for _, qty := range []int{0, -3} {
		_, err := p.Price([]LineRequest{{ProductID: 1, Quantity: qty}})
		require.ErrorIs(t, err, ErrInvalidQuantity, "qty=%d", qty)
	}
}

func TestPriceUnknownProductAbortsWhole(t *testing.T) {
	p := NewPricer(testCatalog(), decimal.NewFromFloat(0.10))
	out, err := p.Price([]LineRequest{{ProductID: 1, Quantity: 1}, {ProductID: 999, Quantity: 1}})
	require.Nil(t, out, "no partial pricing")
	var pnf *ProductNotFoundError
	require.True(t, errors.As(err, &pnf))
	require.Equal(t, uint(999), pnf.ProductID)
}

func TestPriceConfigurableRate(t *testing.T) {
	p := NewPricer(testCatalog(), decimal.NewFromFloat(0.20))
	out, err := p.Price([]LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}})
	require.NoError(t, err)
	require.True(t, out.Tax.Equal(decimal.NewFromFloat(14.0)), "tax=%s", out.Tax)
	require.True(t, out.Total.Equal(decimal.NewFromFloat(84.0)), "total=%s", out.Total)
}

func TestPriceRoundsTaxNotLines(t *testing.T) {
	p := NewPricer(testCatalog(), decimal.NewFromFloat(0.10))
	out, err := p.Price([]LineRequest{{ProductID: 7, Quantity: 3}})
	require.NoError(t, err)
	// 19.99 * 3 = 59.97 exact; 5.997 rounds to 6.00
	require.True(t, out.Lines[0].LineTotal.Equal(decimal.NewFromFloat(59.97)))
	require.True(t, out.Tax.Equal(decimal.NewFromFloat(6.00)), "tax=%s", out.Tax)
	require.True(t, out.Total.Equal(decimal.NewFromFloat(65.97)), "total=%s", out.Total)
}
