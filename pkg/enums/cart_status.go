package enums

import "fmt"

// CartStatus tracks a priced cart's progress through the order pipeline.
// Carts are created as "New" at checkout and purged on the next checkout
// for the same user until an order process moves them along.
type CartStatus string

const (
	CartStatusNew       CartStatus = "New"
	CartStatusOrdered   CartStatus = "Ordered"
	CartStatusCancelled CartStatus = "Cancelled"
)

var validCartStatuses = []CartStatus{
	CartStatusNew,
	CartStatusOrdered,
	CartStatusCancelled,
}

// String implements fmt.Stringer.
func (c CartStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartStatus.
func (c CartStatus) IsValid() bool {
	for _, candidate := range validCartStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartStatus converts raw input into a CartStatus.
func ParseCartStatus(value string) (CartStatus, error) {
	for _, candidate := range validCartStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart status %q", value)
}
