package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/Apurer/web-larek/internal/domains/orders/application/types"
)

type normalizedPlaceOrderInput struct {
	Payment string   `json:"payment"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Items   []string `json:"items"`
	Total   int64    `json:"total"`
}

// FingerprintPlaceOrder builds a deterministic hash of the order payload (excluding the idempotency key).
// Item order does not affect the hash.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	items := append([]string{}, input.Items...)
	sort.Strings(items)
	payload, err := json.Marshal(normalizedPlaceOrderInput{
		Payment: strings.ToLower(strings.TrimSpace(input.Payment)),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
		Items:   items,
		Total:   input.Total,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
