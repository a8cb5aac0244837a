package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/web-larek/internal/app/larekapi"
	"github.com/Apurer/web-larek/internal/domains/orders/application/types"
	"github.com/Apurer/web-larek/internal/domains/orders/domain"
	platformobservability "github.com/Apurer/web-larek/internal/platform/observability"
	orderworkflows "github.com/Apurer/web-larek/internal/platform/temporal/workflows/orders"
)

func TestRegister_PlacesSeededOrder(t *testing.T) {
	instruments := &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	services, err := larekapi.NewServices(context.Background(), larekapi.Config{}, nil, nil, instruments)
	require.NoError(t, err)

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	Register(env, services.Orders)

	env.ExecuteWorkflow(orderworkflows.OrderPlacementWorkflowName, orderworkflows.OrderPlacementWorkflowInput{
		Command: types.PlaceOrderInput{
			Payment: "cash",
			Email:   "buyer@example.com",
			Phone:   "+70000000000",
			Address: "Main st 1",
			Items:   []string{"854cef69-976d-4c2a-a18c-2aa45046c390", "c101ab44-ed99-4a54-990d-47aa2bb4e7d9"},
			Total:   2200,
		},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	require.NotEmpty(t, order.ID)
	require.Equal(t, int64(2200), order.Total)

	stored, err := services.Orders.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, stored.Status)
}

func TestRegister_RejectsPricelessItem(t *testing.T) {
	instruments := &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	services, err := larekapi.NewServices(context.Background(), larekapi.Config{}, nil, nil, instruments)
	require.NoError(t, err)

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	Register(env, services.Orders)

	env.ExecuteWorkflow(orderworkflows.OrderPlacementWorkflowName, orderworkflows.OrderPlacementWorkflowInput{
		Command: types.PlaceOrderInput{
			Payment: "cash",
			Email:   "buyer@example.com",
			Phone:   "+70000000000",
			Address: "Main st 1",
			Items:   []string{"b06cde61-912f-4663-9751-09956c0eed67"},
			Total:   0,
		},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}
