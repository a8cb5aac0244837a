//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "larek-api"
	ConsumerName = "storefront"

	BasePath = "/api/weblarek"

	StateCatalogSeeded = "the default catalog is seeded"
)

const (
	// PricedProductID is "Fuel for the mind" from the default catalog.
	PricedProductID    = "412bcf81-7e75-4e70-bdb9-d3c73c9803b7"
	PricedProductPrice = int64(2500)
	// PricelessProductID is "Mamka-timer", which has no price.
	PricelessProductID = "b06cde61-912f-4663-9751-09956c0eed67"

	ExampleIdempotencyKey = "5b0c3d5e-8d3c-4a3e-9a4f-4f0c3b1b6f1a"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload is a valid order for the priced product.
func ExampleOrderPayload(items ...string) map[string]any {
	if len(items) == 0 {
		items = []string{PricedProductID}
	}
	return map[string]any{
		"payment": "card",
		"email":   "pact.buyer@example.com",
		"phone":   "+70000000000",
		"address": "Pact street 1",
		"total":   PricedProductPrice,
		"items":   items,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
