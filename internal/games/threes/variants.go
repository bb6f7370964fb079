package threes

import "fmt"

// Variant is a registered way to play: a board size and winning tile.
// Zero fields are taken from the loaded configuration.
type Variant struct {
	ID               string
	Name             string
	Width            int
	Height           int
	VocabularyLength int
}

// Variants lists every registered variant.
var Variants = []Variant{
	{ID: "threes", Name: "Threes"},
	{ID: "threes_mini", Name: "Threes Mini", Width: 3, Height: 3, VocabularyLength: 8},
	{ID: "threes_large", Name: "Threes Large", Width: 5, Height: 5, VocabularyLength: 15},
}

// VariantCount returns the number of variants.
func VariantCount() int {
	return len(Variants)
}

// GetVariant returns the variant with the given ID.
func GetVariant(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Describe returns a short summary such as "3x3, up to 34".
// Variants that follow the configuration report "configurable".
func (v Variant) Describe() string {
	if v.Width == 0 || v.Height == 0 || v.VocabularyLength == 0 {
		return "configurable"
	}
	return fmt.Sprintf("%dx%d, up to %d", v.Width, v.Height, NewVocabulary(v.VocabularyLength).Max())
}
