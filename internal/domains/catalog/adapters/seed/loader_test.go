package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
)

func TestDefault_HasPricedAndPricelessProducts(t *testing.T) {
	products, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	var priced, priceless int
	for _, p := range products {
		if p.ForSale() {
			priced++
		} else {
			priceless++
		}
	}
	require.NotZero(t, priced)
	require.NotZero(t, priceless)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("products:\n  - id: a\n    title: A\n    cost: 3\n"))
	require.Error(t, err)
}

func TestParse_ValidatesProducts(t *testing.T) {
	_, err := Parse(strings.NewReader("products:\n  - id: a\n    title: A\n    price: -1\n"))
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestParse_NullPriceIsPriceless(t *testing.T) {
	products, err := Parse(strings.NewReader("products:\n  - id: a\n    title: A\n    price: null\n  - id: b\n    title: B\n    price: 5\n"))
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Nil(t, products[0].Price)
	require.Equal(t, int64(5), *products[1].Price)
}
