package model

// FindVariant returns the variant whose attributes exactly match the
// selection, or nil if no variant matches. A match requires the same set of
// attribute keys with equal values; a selection missing an attribute the
// variant declares does not match.
func FindVariant(variants []Variant, selection map[string]string) *Variant {
	if len(selection) == 0 {
		return nil
	}

	for i := range variants {
		v := &variants[i]
		if len(v.Attributes) != len(selection) {
			continue
		}
		if attributesMatch(v.Attributes, selection) {
			return v
		}
	}
	return nil
}

// HasVariantWithSelection reports whether any variant is compatible with a
// partial selection. Used to grey out option values that cannot lead to a
// purchasable combination: an attribute absent from the selection is
// unconstrained.
func HasVariantWithSelection(variants []Variant, partial map[string]string) bool {
	for i := range variants {
		if attributesMatch(variants[i].Attributes, partial) {
			return true
		}
	}
	return false
}

// attributesMatch reports whether attrs agrees with every key in selection.
func attributesMatch(attrs, selection map[string]string) bool {
	for key, want := range selection {
		if got, ok := attrs[key]; !ok || got != want {
			return false
		}
	}
	return true
}

// VariantPrice returns the effective unit price for a product given a full
// selection: the matching variant's price, or the base price when the product
// has no variants. Returns ok=false when a selection is required but does not
// resolve to a variant.
func VariantPrice(p *Product, selection map[string]string) (int64, bool) {
	if len(p.Variants) == 0 {
		return p.Price, true
	}
	v := FindVariant(p.Variants, selection)
	if v == nil {
		return 0, false
	}
	return v.Price, true
}
