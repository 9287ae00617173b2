package domain

// ViewMode is the top-level page a client is looking at.
type ViewMode string

const (
	ViewStorefront ViewMode = "storefront"
	ViewAdmin      ViewMode = "admin"
)

// ViewState is the presentation state of one client.
type ViewState struct {
	Mode     ViewMode `json:"mode"`
	CartOpen bool     `json:"cart_open"`
	ChatOpen bool     `json:"chat_open"`
}

// DefaultViewState is the state of a freshly opened storefront.
func DefaultViewState() ViewState {
	return ViewState{Mode: ViewStorefront}
}
