package larekserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/web-larek/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/web-larek/internal/domains/orders/application/types"
	"github.com/Apurer/web-larek/internal/domains/orders/domain"
	ordersports "github.com/Apurer/web-larek/internal/domains/orders/ports"
	apierrors "github.com/Apurer/web-larek/internal/shared/errors"
)

// IdempotencyKeyHeader names the request header used to deduplicate order submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI. A nil workflows runs placement on the service directly.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /order
// Places an order for the listed products
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := ordermapper.ToPlaceOrderInput(payload, c.GetHeader(IdempotencyKeyHeader))
	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.ToOrderPlaced(order))
}

func (api *OrderAPI) placeOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /order/:id
// Finds a placed order by id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}
