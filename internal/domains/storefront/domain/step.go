package domain

// Step is one screen of the storefront flow.
type Step string

const (
	StepCatalog  Step = "catalog"
	StepPreview  Step = "preview"
	StepBasket   Step = "basket"
	StepOrder    Step = "order"
	StepContacts Step = "contacts"
	StepSuccess  Step = "success"
)

// Modal reports whether the step is shown over the catalog and locks the page.
func (s Step) Modal() bool {
	return s != StepCatalog && s != ""
}
