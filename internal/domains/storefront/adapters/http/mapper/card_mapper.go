package mapper

import (
	"fmt"
	"strings"

	"github.com/Apurer/web-larek/internal/domains/storefront/domain"
)

// PricelessLabel is shown instead of a price for products that cannot be bought.
const PricelessLabel = "Priceless"

// Button labels of the preview card.
const (
	ButtonAdd    = "Add to basket"
	ButtonRemove = "Remove from basket"
)

var categoryModifiers = map[string]string{
	"soft-skill":    "soft",
	"other":         "other",
	"additional":    "additional",
	"button":        "button",
	"hard-skill":    "hard",
	"софт-скил":     "soft",
	"другое":        "other",
	"дополнительное": "additional",
	"кнопка":        "button",
	"хард-скил":     "hard",
}

// Card is the transport shape of a product card.
type Card struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Image            string `json:"image"`
	Category         string `json:"category"`
	CategoryModifier string `json:"categoryModifier,omitempty"`
	Price            *int64 `json:"price"`
	PriceLabel       string `json:"priceLabel"`
}

// PreviewCard adds the basket button state to a card.
type PreviewCard struct {
	Card
	InBasket       bool   `json:"inBasket"`
	Button         string `json:"button"`
	ButtonDisabled bool   `json:"buttonDisabled"`
}

// BasketRow is one line of the basket view.
type BasketRow struct {
	Index      int    `json:"index"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	PriceLabel string `json:"priceLabel"`
}

// BasketView is the transport shape of the basket.
type BasketView struct {
	Rows            []BasketRow `json:"rows"`
	Total           int64       `json:"total"`
	TotalLabel      string      `json:"totalLabel"`
	Count           int         `json:"count"`
	CheckoutEnabled bool        `json:"checkoutEnabled"`
	Notice          string      `json:"notice,omitempty"`
}

// PriceLabel renders a price the way every card shows it.
func PriceLabel(price *int64) string {
	if price == nil {
		return PricelessLabel
	}
	return SynapsesLabel(*price)
}

// SynapsesLabel renders an amount of the storefront currency.
func SynapsesLabel(amount int64) string {
	return fmt.Sprintf("%d synapses", amount)
}

// CategoryModifier maps a category name to its style modifier. Unknown
// categories yield "".
func CategoryModifier(category string) string {
	return categoryModifiers[strings.ToLower(strings.TrimSpace(category))]
}

// FromProduct converts a product into its catalog card.
func FromProduct(p domain.Product) Card {
	var price *int64
	if p.Price != nil {
		v := *p.Price
		price = &v
	}
	return Card{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Image:            p.Image,
		Category:         p.Category,
		CategoryModifier: CategoryModifier(p.Category),
		Price:            price,
		PriceLabel:       PriceLabel(p.Price),
	}
}

// FromProducts converts a catalog.
func FromProducts(products []domain.Product) []Card {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, FromProduct(p))
	}
	return cards
}

// ToPreview renders the preview card. Priceless products cannot be added.
func ToPreview(p domain.Product, inBasket bool) PreviewCard {
	button := ButtonAdd
	if inBasket {
		button = ButtonRemove
	}
	return PreviewCard{
		Card:           FromProduct(p),
		InBasket:       inBasket,
		Button:         button,
		ButtonDisabled: p.Priceless() && !inBasket,
	}
}

// ToBasketView renders the basket. Rows are numbered from 1; ids missing from
// lookup are listed with their id as title.
func ToBasketView(basket domain.Basket, lookup func(id string) (domain.Product, bool)) BasketView {
	rows := make([]BasketRow, 0, len(basket.Items))
	for i, id := range basket.Items {
		row := BasketRow{Index: i + 1, ID: id, Title: id, PriceLabel: PricelessLabel}
		if lookup != nil {
			if p, ok := lookup(id); ok {
				row.Title = p.Title
				row.PriceLabel = PriceLabel(p.Price)
			}
		}
		rows = append(rows, row)
	}
	return BasketView{
		Rows:            rows,
		Total:           basket.Total,
		TotalLabel:      SynapsesLabel(basket.Total),
		Count:           basket.Count(),
		CheckoutEnabled: !basket.Empty(),
	}
}
