package workflows

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/web-larek/internal/domains/orders/application/types"
	"github.com/Apurer/web-larek/internal/domains/orders/domain"
)

type recordingService struct {
	inputs []types.PlaceOrderInput
}

func (r *recordingService) PlaceOrder(_ context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	r.inputs = append(r.inputs, input)
	return &domain.Order{ID: "o-1", Total: input.Total}, nil
}

func (r *recordingService) GetOrder(context.Context, string) (*domain.Order, error) {
	return nil, nil
}

func TestInlineOrderWorkflows_Delegates(t *testing.T) {
	svc := &recordingService{}
	order, err := NewInlineOrderWorkflows(svc).PlaceOrder(context.Background(), types.PlaceOrderInput{Total: 5})
	require.NoError(t, err)
	require.Equal(t, "o-1", order.ID)
	require.Len(t, svc.inputs, 1)

	_, err = NewInlineOrderWorkflows(nil).PlaceOrder(context.Background(), types.PlaceOrderInput{})
	require.Error(t, err)
}

func TestBuildOrderPlacementWorkflowID(t *testing.T) {
	a := buildOrderPlacementWorkflowID(types.PlaceOrderInput{IdempotencyKey: "k"})
	b := buildOrderPlacementWorkflowID(types.PlaceOrderInput{IdempotencyKey: " k "})
	require.Equal(t, a, b)
	require.True(t, strings.HasPrefix(a, "order-placement-idem-"))

	c := buildOrderPlacementWorkflowID(types.PlaceOrderInput{})
	d := buildOrderPlacementWorkflowID(types.PlaceOrderInput{})
	require.NotEqual(t, c, d)
}

func TestTemporalOrderWorkflows_RequiresClient(t *testing.T) {
	_, err := NewTemporalOrderWorkflows(nil).PlaceOrder(context.Background(), types.PlaceOrderInput{})
	require.Error(t, err)
}
