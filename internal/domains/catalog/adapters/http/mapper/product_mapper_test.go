package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
)

func TestFromDomainProducts_EmptyListEncodesItems(t *testing.T) {
	data, err := json.Marshal(FromDomainProducts(nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"total":0,"items":[]}`, string(data))
}

func TestFromDomainProduct_NullPrice(t *testing.T) {
	data, err := json.Marshal(FromDomainProduct(&domain.Product{ID: "B", Title: "Button", Category: "button"}))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"B","description":"","image":"","title":"Button","category":"button","price":null}`, string(data))
}

func TestFromDomainProduct_CopiesPrice(t *testing.T) {
	price := int64(750)
	p := &domain.Product{ID: "A", Title: "A", Price: &price}
	out := FromDomainProduct(p)
	price = 1
	require.Equal(t, int64(750), *out.Price)
}

func TestToDomainProduct_Validates(t *testing.T) {
	_, err := ToDomainProduct(Product{ID: "A"})
	require.ErrorIs(t, err, domain.ErrInvalidTitle)
}
