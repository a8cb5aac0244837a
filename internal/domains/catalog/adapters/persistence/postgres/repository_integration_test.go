//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
	"github.com/Apurer/web-larek/internal/domains/catalog/ports"
	"github.com/Apurer/web-larek/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("larek_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestRepository_SaveAllKeepsOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	price := int64(750)

	require.NoError(t, repo.SaveAll(ctx, []*domain.Product{
		{ID: "B", Title: "Button", Category: "button"},
		{ID: "A", Title: "Fuel", Category: "soft-skill", Price: &price},
	}))

	list, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].ID)
	assert.Nil(t, list[0].Price)
	assert.Equal(t, int64(750), *list[1].Price)

	soft, err := repo.List(ctx, "SOFT-SKILL")
	require.NoError(t, err)
	require.Len(t, soft, 1)
}

func TestRepository_UpsertAndNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []*domain.Product{{ID: "A", Title: "Fuel"}}))
	price := int64(10)
	require.NoError(t, repo.SaveAll(ctx, []*domain.Product{{ID: "A", Title: "Fuel v2", Price: &price}}))

	p, err := repo.GetByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "Fuel v2", p.Title)
	assert.Equal(t, int64(10), *p.Price)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
