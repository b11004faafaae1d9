package tracking

// ContentTypeProduct is the only content type the storefront reports.
const ContentTypeProduct = "product"

// CustomData describes what the event is about.
type CustomData struct {
	Currency    string   `json:"currency,omitempty"`
	Value       float64  `json:"value,omitempty"`
	ContentIDs  []string `json:"content_ids,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	ContentName string   `json:"content_name,omitempty"`
	NumItems    int      `json:"num_items,omitempty"`
	OrderID     string   `json:"order_id,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// WithDefaults fills the currency and content type when unset.
func (c CustomData) WithDefaults(currency string) CustomData {
	if c.Currency == "" {
		c.Currency = currency
	}
	if c.ContentType == "" {
		c.ContentType = ContentTypeProduct
	}
	return c
}
