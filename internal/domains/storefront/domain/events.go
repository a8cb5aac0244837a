package domain

// Events published by the state store.
const (
	EventItemsChanged   = "items:changed"
	EventPreviewChanged = "preview:changed"
	EventBasketChanged  = "basket:changed"
	EventFormError      = "form:error"
)

// Events published by the checkout workflow for the views.
const (
	EventOrderRender      = "order:render"
	EventOrderValidity    = "order:validity"
	EventContactsRender   = "contacts:render"
	EventContactsValidity = "contacts:validity"
	EventSuccessRender    = "success:render"
	EventOrderFailed      = "order:failed"
	EventStepChanged      = "checkout:step"
)

// Intent events published by the views.
const (
	EventCardSelect     = "card:select"
	EventBasketToggle   = "basket:toggle"
	EventBasketRemove   = "basket:remove"
	EventBasketOpen     = "basket:open"
	EventOrderOpen      = "order:open"
	EventOrderSubmit    = "order:submit"
	EventContactsSubmit = "contacts:submit"
	EventSuccessClose   = "success:close"
	EventModalClose     = "modal:close"
	EventCatalogReload  = "catalog:reload"
)

// Forms whose fields publish "<form>.<field>:change" events.
const (
	FormOrder    = "order"
	FormContacts = "contacts"
)

// FieldChange is the payload of a form field change event.
type FieldChange struct {
	Field Field
	Value string
}

// FieldError is the payload of EventFormError.
type FieldError struct {
	Field   Field
	Message string
}

// OrderFormState renders the delivery step.
type OrderFormState struct {
	Address string
	Payment PaymentMethod
	Valid   bool
	Errors  string
}

// ContactsFormState renders the contacts step.
type ContactsFormState struct {
	Email  string
	Phone  string
	Valid  bool
	Errors string
}

// FormValidity is pushed to a form after each edit.
type FormValidity struct {
	Valid  bool
	Errors string
}

// Success renders the confirmation step.
type Success struct {
	OrderID string
	Total   int64
}

// SubmitFailure reports a failed order submission.
type SubmitFailure struct {
	Message string
}

// StepChanged reports the active checkout step and the page lock derived from it.
type StepChanged struct {
	Step   Step
	Locked bool
}
