//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/web-larek/test/pact"

	"github.com/Apurer/web-larek/internal/clients/http/larek"
	"github.com/Apurer/web-larek/internal/domains/storefront/domain"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

const cdnURL = "https://cdn.pact/weblarek"

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	uuidKey := matchers.Regex(pacttest.ExampleIdempotencyKey, "^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$")
	// price is left out: priceless products serve null, which a type matcher rejects.
	productMatcher := matchers.Map{
		"id":          matchers.Like(pacttest.PricedProductID),
		"title":       matchers.Like("Fuel for the mind"),
		"description": matchers.Like("If a task refuses to be solved, this will help."),
		"image":       matchers.Like("/Soft_Flower.svg"),
		"category":    matchers.Like("additional"),
	}

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request for the catalog").
		WithRequest("GET", pacttest.BasePath+"/product").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"total": matchers.Like(7),
				"items": matchers.EachLike(productMatcher, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("an order for a priced product").
		WithRequest("POST", pacttest.BasePath+"/order", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header(larek.IdempotencyHeader, uuidKey)
			b.JSONBody(pacttest.ExampleOrderPayload())
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":    matchers.Like("0c3f9d4e-2a55-4c1b-9f3e-1f0d8c7b6a50"),
				"total": matchers.Like(pacttest.PricedProductPrice),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("an order for a priceless product").
		WithRequest("POST", pacttest.BasePath+"/order", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header(larek.IdempotencyHeader, uuidKey)
			b.JSONBody(pacttest.ExampleOrderPayload(pacttest.PricelessProductID))
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"error":  matchers.Like("item is not for sale"),
				"status": matchers.Like(http.StatusBadRequest),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		baseURL := fmt.Sprintf("http://%s:%d%s", config.Host, config.Port, pacttest.BasePath)
		client, err := larek.NewClient(baseURL, cdnURL)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		products, err := client.FetchCatalog(ctx)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		if len(products) == 0 || products[0].Image != cdnURL+"/Soft_Flower.svg" {
			return fmt.Errorf("unexpected catalog %+v", products)
		}

		result, err := client.SubmitOrder(ctx, exampleOrder(pacttest.PricedProductID))
		if err != nil {
			return fmt.Errorf("submit order: %w", err)
		}
		if result.ID == "" || result.Total != pacttest.PricedProductPrice {
			return fmt.Errorf("unexpected order result %+v", result)
		}

		_, err = client.SubmitOrder(ctx, exampleOrder(pacttest.PricelessProductID))
		var apiErr *larek.APIError
		if !errors.As(err, &apiErr) {
			return fmt.Errorf("expected an API error for a priceless product, got %v", err)
		}
		if apiErr.Status != http.StatusBadRequest || apiErr.Message == "" {
			return fmt.Errorf("unexpected API error %+v", apiErr)
		}
		return nil
	})
	require.NoError(t, err)
}

func exampleOrder(item string) domain.OrderRequest {
	return domain.OrderRequest{
		Payment: domain.PaymentCard,
		Email:   "pact.buyer@example.com",
		Phone:   "+70000000000",
		Address: "Pact street 1",
		Total:   pacttest.PricedProductPrice,
		Items:   []string{item},
	}
}
