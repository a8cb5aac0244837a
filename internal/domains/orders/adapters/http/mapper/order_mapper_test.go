package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/web-larek/internal/domains/orders/domain"
)

func TestToPlaceOrderInput_CopiesItems(t *testing.T) {
	req := OrderRequest{Payment: "card", Email: "a@b.c", Phone: "+7", Address: "Main", Total: 5, Items: []string{"A"}}
	input := ToPlaceOrderInput(req, "key-1")
	require.Equal(t, "key-1", input.IdempotencyKey)
	require.Equal(t, int64(5), input.Total)

	req.Items[0] = "B"
	require.Equal(t, []string{"A"}, input.Items)
}

func TestFromDomainOrder(t *testing.T) {
	order, err := domain.NewOrder("CARD", "a@b.c", "+7", "Main", []string{"A"}, 5)
	require.NoError(t, err)

	out := FromDomainOrder(order)
	require.Equal(t, "card", out.Payment)
	require.Equal(t, "placed", out.Status)
	require.Equal(t, OrderPlaced{ID: order.ID, Total: 5}, ToOrderPlaced(order))

	raw, err := json.Marshal(FromDomainOrder(nil))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"items":[]`)
	require.Equal(t, OrderPlaced{}, ToOrderPlaced(nil))
}
