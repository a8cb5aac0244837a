package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/web-larek/internal/domains/orders/domain"
	"github.com/Apurer/web-larek/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and runs migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID        string         `gorm:"primaryKey;column:id;size:64"`
	Payment   string         `gorm:"column:payment;type:varchar(16)"`
	Email     string         `gorm:"column:email;index"`
	Phone     string         `gorm:"column:phone"`
	Address   string         `gorm:"column:address"`
	Items     pq.StringArray `gorm:"column:items;type:text[]"`
	Total     int64          `gorm:"column:total"`
	Status    string         `gorm:"column:status;type:varchar(32);index"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"payment":    record.Payment,
				"email":      record.Email,
				"phone":      record.Phone,
				"address":    record.Address,
				"items":      record.Items,
				"total":      record.Total,
				"status":     record.Status,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(o *domain.Order) orderRecord {
	return orderRecord{
		ID:        o.ID,
		Payment:   string(o.Payment),
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		Items:     pq.StringArray(append([]string{}, o.Items...)),
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:        r.ID,
		Payment:   domain.Payment(r.Payment),
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		Items:     append([]string{}, r.Items...),
		Total:     r.Total,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
