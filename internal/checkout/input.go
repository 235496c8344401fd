package checkout

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CheckoutRequest is the raw multi-vendor cart submission. The shape is kept
// loose on purpose: storefront clients send quantity as a number or a string,
// and identify the product under either "product_id" or "product".
type CheckoutRequest struct {
	Cart []VendorBlock `json:"cart"`
}

// VendorBlock groups the ordered lines for a single vendor.
type VendorBlock struct {
	Vendor   string         `json:"vendor"`
	Products []ProductEntry `json:"products"`
}

// ProductEntry is one unpriced line in a vendor block.
type ProductEntry struct {
	ProductID string   `json:"product_id"`
	Product   string   `json:"product"`
	Quantity  Quantity `json:"quantity"`
}

// ResolveID returns the product identifier, preferring "product_id" over the
// legacy "product" alias.
func (p ProductEntry) ResolveID() string {
	if id := strings.TrimSpace(p.ProductID); id != "" {
		return id
	}
	return strings.TrimSpace(p.Product)
}

// Quantity accepts a JSON number or a numeric string. Zero-valued Quantity
// means the field was absent or unparseable; callers must reject it via Int.
type Quantity struct {
	raw string
}

// UnmarshalJSON keeps the raw token for later coercion so that "3", 3 and
// 3.0 all survive decoding while "abc" is only rejected at validation time.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		q.raw = num.String()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		q.raw = strings.TrimSpace(s)
		return nil
	}
	q.raw = ""
	return nil
}

// MarshalJSON renders the quantity back as a bare number when possible.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if n, ok := q.Int(); ok {
		return json.Marshal(n)
	}
	return json.Marshal(q.raw)
}

// Int coerces the quantity to a positive integer. It reports false for
// absent, non-numeric, fractional, zero, or negative values.
func (q Quantity) Int() (int, bool) {
	if q.raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(q.raw); err == nil {
		if n <= 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(q.raw, 64)
	if err != nil || f != float64(int(f)) || int(f) <= 0 {
		return 0, false
	}
	return int(f), true
}

// QuantityOf builds a Quantity from an integer. Test helper and programmatic
// construction path.
func QuantityOf(n int) Quantity {
	return Quantity{raw: strconv.Itoa(n)}
}
