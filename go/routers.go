package larekserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	ProductAPI ProductAPI
	OrderAPI   OrderAPI
}

// NewRouter returns a new router. Middleware is installed before any route so
// it applies to all of them.
func NewRouter(basePath string, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, basePath, handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing engine under basePath.
func NewRouterWithGinEngine(router *gin.Engine, basePath string, handleFunctions ApiHandleFunctions) *gin.Engine {
	group := router.Group("/" + strings.Trim(basePath, "/"))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			group.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			group.POST(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListProducts", http.MethodGet, "/product", handleFunctions.ProductAPI.ListProducts},
		{"GetProduct", http.MethodGet, "/product/:id", handleFunctions.ProductAPI.GetProduct},
		{"PlaceOrder", http.MethodPost, "/order", handleFunctions.OrderAPI.PlaceOrder},
		{"GetOrder", http.MethodGet, "/order/:id", handleFunctions.OrderAPI.GetOrder},
	}
}
