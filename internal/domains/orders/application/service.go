package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/web-larek/internal/domains/orders/application/types"
	"github.com/Apurer/web-larek/internal/domains/orders/domain"
	"github.com/Apurer/web-larek/internal/domains/orders/ports"
)

// Service orchestrates order use cases.
type Service struct {
	repo        ports.Repository
	catalog     ports.Catalog
	idempotency ports.IdempotencyStore
}

type Option func(*Service)

// WithIdempotencyStore enables replay of submissions that carry an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, catalog ports.Catalog, opts ...Option) *Service {
	s := &Service{repo: repo, catalog: catalog}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder validates the submission against the catalog and stores it. A
// repeated idempotency key with the same payload returns the original order.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	var hash string
	if key != "" && s.idempotency != nil {
		var err error
		if hash, err = FingerprintPlaceOrder(input); err != nil {
			return nil, err
		}
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.replay(ctx, existing, hash)
		}
	}

	order, err := domain.NewOrder(input.Payment, input.Email, input.Phone, input.Address, input.Items, input.Total)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.checkItems(ctx, order); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	if key != "" && s.idempotency != nil {
		record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, OrderID: saved.ID})
		if errors.Is(err, ports.ErrIdempotencyConflict) && record != nil {
			// A concurrent submission with the same key won the race.
			return s.replay(ctx, record, hash)
		}
		if err != nil {
			return nil, err
		}
	}
	return saved, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) replay(ctx context.Context, record *ports.IdempotencyRecord, hash string) (*domain.Order, error) {
	if record.RequestHash != hash {
		return nil, ports.ErrIdempotencyConflict
	}
	return s.repo.GetByID(ctx, record.OrderID)
}

// checkItems requires every item to be a priced catalog product whose prices
// add up to the submitted total.
func (s *Service) checkItems(ctx context.Context, order *domain.Order) error {
	if s.catalog == nil {
		return errors.New("orders catalog not configured")
	}
	var sum int64
	for _, id := range order.Items {
		item, err := s.catalog.Lookup(ctx, id)
		if err != nil {
			if errors.Is(err, ports.ErrUnknownItem) {
				return fmt.Errorf("%w: %w: %s", ErrInvalidInput, ports.ErrUnknownItem, id)
			}
			return err
		}
		if item.Price == nil {
			return fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrItemNotForSale, id)
		}
		sum += *item.Price
	}
	if sum != order.Total {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrTotalMismatch)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
