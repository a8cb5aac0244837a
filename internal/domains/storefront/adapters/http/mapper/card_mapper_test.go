package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
)

func TestPriceLabel(t *testing.T) {
	require.Equal(t, "750 synapses", PriceLabel(domain.Price(750)))
	require.Equal(t, "0 synapses", PriceLabel(domain.Price(0)))
	require.Equal(t, PricelessLabel, PriceLabel(nil))
}

func TestCategoryModifier(t *testing.T) {
	cases := map[string]string{
		"soft-skill": "soft",
		"Hard-Skill": "hard",
		"кнопка":     "button",
		"другое":     "other",
		"unknown":    "",
	}
	for category, want := range cases {
		require.Equal(t, want, CategoryModifier(category), category)
	}
}

func TestToPreview_DisablesPricelessAdd(t *testing.T) {
	priceless := domain.Product{ID: "B", Title: "Button"}

	preview := ToPreview(priceless, false)
	require.True(t, preview.ButtonDisabled)
	require.Equal(t, ButtonAdd, preview.Button)
	require.Equal(t, PricelessLabel, preview.PriceLabel)

	preview = ToPreview(domain.Product{ID: "A", Price: domain.Price(100)}, true)
	require.False(t, preview.ButtonDisabled)
	require.Equal(t, ButtonRemove, preview.Button)
}

func TestToBasketView(t *testing.T) {
	catalog := map[string]domain.Product{
		"A": {ID: "A", Title: "Fuel", Price: domain.Price(100)},
		"B": {ID: "B", Title: "Button"},
	}
	lookup := func(id string) (domain.Product, bool) {
		p, ok := catalog[id]
		return p, ok
	}

	view := ToBasketView(domain.Basket{Items: []string{"A", "B", "ghost"}, Total: 100}, lookup)

	require.Equal(t, []BasketRow{
		{Index: 1, ID: "A", Title: "Fuel", PriceLabel: "100 synapses"},
		{Index: 2, ID: "B", Title: "Button", PriceLabel: PricelessLabel},
		{Index: 3, ID: "ghost", Title: "ghost", PriceLabel: PricelessLabel},
	}, view.Rows)
	require.Equal(t, "100 synapses", view.TotalLabel)
	require.Equal(t, 3, view.Count)
	require.True(t, view.CheckoutEnabled)

	empty := ToBasketView(domain.Basket{}, lookup)
	require.False(t, empty.CheckoutEnabled)
	require.Empty(t, empty.Rows)
}
