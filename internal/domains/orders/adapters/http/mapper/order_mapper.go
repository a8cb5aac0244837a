package mapper

import (
	"time"

	"github.com/Apurer/web-larek/internal/domains/orders/application/types"
	"github.com/Apurer/web-larek/internal/domains/orders/domain"
)

// OrderRequest is the body of POST /order.
type OrderRequest struct {
	Payment string   `json:"payment"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Total   int64    `json:"total"`
	Items   []string `json:"items"`
}

// OrderPlaced acknowledges a placed order.
type OrderPlaced struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

// Order is the full transport representation returned by GET /order/:id.
type Order struct {
	ID        string    `json:"id"`
	Payment   string    `json:"payment"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Total     int64     `json:"total"`
	Items     []string  `json:"items"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPlaceOrderInput converts a transport request into the use case input.
func ToPlaceOrderInput(req OrderRequest, idempotencyKey string) types.PlaceOrderInput {
	return types.PlaceOrderInput{
		IdempotencyKey: idempotencyKey,
		Payment:        req.Payment,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Items:          append([]string{}, req.Items...),
		Total:          req.Total,
	}
}

// ToOrderPlaced builds the acknowledgement for a placed order.
func ToOrderPlaced(order *domain.Order) OrderPlaced {
	if order == nil {
		return OrderPlaced{}
	}
	return OrderPlaced{ID: order.ID, Total: order.Total}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{Items: []string{}}
	}
	return Order{
		ID:        order.ID,
		Payment:   string(order.Payment),
		Email:     order.Email,
		Phone:     order.Phone,
		Address:   order.Address,
		Total:     order.Total,
		Items:     append([]string{}, order.Items...),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
}
