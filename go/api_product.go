package larekserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	catalogmapper "github.com/Apurer/web-larek/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/web-larek/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/web-larek/internal/shared/errors"
)

// ProductAPI wires HTTP transport with the catalog bounded context.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /product
// Lists catalog products, optionally filtered by category
func (api *ProductAPI) ListProducts(c *gin.Context) {
	var category string
	if err := runtime.BindQueryParameter("form", true, false, "category", c.Request.URL.Query(), &category); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	products, err := api.service.List(c.Request.Context(), category)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

// Get /product/:id
// Finds a product by id
func (api *ProductAPI) GetProduct(c *gin.Context) {
	product, err := api.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}
