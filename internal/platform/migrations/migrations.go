package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the catalog and orders bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderIdempotencyRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
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

// Idempotency schema mirrors the orders idempotency store.
type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     string    `gorm:"column:order_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
