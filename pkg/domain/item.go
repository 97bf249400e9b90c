package domain

import (
	"math"
	"strings"
	"unicode"
)

// MenuItem is a single dish or drink on the café menu.
// ID is the key of the persisted items map, so it is not repeated inside the record.
type MenuItem struct {
	ID         string  `json:"-"`
	Category   string  `json:"category"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Available  bool    `json:"available"`
	IsSpecial  bool    `json:"is_special"`
	OrderCount int     `json:"order_count"`
}

// NewMenuItem validates and normalises a fresh item; order_count always starts at zero.
func NewMenuItem(id, category, name string, price float64, available, special bool) (MenuItem, error) {
	item := MenuItem{
		ID:        strings.TrimSpace(id),
		Category:  TitleCase(category),
		Name:      TitleCase(name),
		Price:     price,
		Available: available,
		IsSpecial: special,
	}
	if err := item.Validate(); err != nil {
		return MenuItem{}, err
	}
	return item, nil
}

// Validate checks the fields every stored item must carry.
func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return NewValidationError("item id is required")
	}
	if strings.TrimSpace(m.Category) == "" {
		return NewValidationError("category is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return NewValidationError("name cannot be empty")
	}
	if m.Price <= 0 || math.IsNaN(m.Price) || math.IsInf(m.Price, 0) {
		return NewValidationError("price must be greater than 0")
	}
	return nil
}

// ItemUpdate lists the mutable fields of a MenuItem. Nil fields are left untouched.
type ItemUpdate struct {
	Name      *string
	Price     *float64
	Available *bool
	IsSpecial *bool
}

// Empty reports whether the update carries no field at all.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Available == nil && u.IsSpecial == nil
}

// Validate rejects values the catalog must never store.
func (u ItemUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return NewValidationError("name cannot be empty")
	}
	if u.Price != nil && *u.Price <= 0 {
		return NewValidationError("price must be greater than 0")
	}
	return nil
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// Any non-letter starts a new word.
func TitleCase(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
