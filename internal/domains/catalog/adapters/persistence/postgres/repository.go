package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
	"github.com/Apurer/web-larek/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and runs migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	Position    int       `gorm:"column:position;index"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Image       string    `gorm:"column:image"`
	Category    string    `gorm:"column:category;type:varchar(64);index"`
	Price       *int64    `gorm:"column:price"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("position ASC")
	if category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// SaveAll upserts the products in one transaction. Positions follow the slice
// order after any products already stored.
func (r *Repository) SaveAll(ctx context.Context, products []*domain.Product) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offset int64
		if err := tx.Model(&productRecord{}).Count(&offset).Error; err != nil {
			return err
		}
		for i, p := range products {
			if p == nil {
				return errors.New("product is nil")
			}
			record := toRecord(p, int(offset)+i)
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"title":       record.Title,
					"description": record.Description,
					"image":       record.Image,
					"category":    record.Category,
					"price":       record.Price,
					"updated_at":  gorm.Expr("NOW()"),
				}),
			}).Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(p *domain.Product, position int) productRecord {
	return productRecord{
		ID:          p.ID,
		Position:    position,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Price:       p.Clone().Price,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Category:    r.Category,
		Price:       r.Price,
	}
}
