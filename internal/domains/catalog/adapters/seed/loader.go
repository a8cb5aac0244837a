// Package seed loads the catalog a larek-api instance starts with.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Apurer/web-larek/internal/domains/catalog/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type file struct {
	Products []entry `yaml:"products"`
}

type entry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
	Price       *int64 `yaml:"price"`
}

// Default returns the catalog bundled with the binary.
func Default() ([]*domain.Product, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) ([]*domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML catalog. Unknown keys are rejected, and a missing
// price means the product is not for sale.
func Parse(r io.Reader) ([]*domain.Product, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc file
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed catalog is empty")
		}
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	products := make([]*domain.Product, 0, len(doc.Products))
	for i, e := range doc.Products {
		p, err := domain.NewProduct(e.ID, e.Title, e.Description, e.Image, e.Category, e.Price)
		if err != nil {
			return nil, fmt.Errorf("seed product %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}
