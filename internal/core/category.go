package core

import "strings"

const (
	G1 Category = "G1"
	G2 Category = "G2"
	G3 Category = "G3"
)

// Category classifies an overtime entry. The set is closed; the business
// meaning of G1/G2/G3 is opaque to this code.
type Category string

// Categories returns all categories in their fixed display order.
func Categories() []Category {
	return []Category{G1, G2, G3}
}

// ParseCategory normalizes raw command input to a Category.
// Input is case-insensitive; blank input defaults to G1.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return G1, nil
	}
	switch c := Category(strings.ToUpper(s)); c {
	case G1, G2, G3:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

func (c Category) Validate() error {
	switch c {
	case G1, G2, G3:
		return nil
	default:
		return ErrInvalidCategory
	}
}
