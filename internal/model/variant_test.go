package model

import "testing"

func testVariants() []Variant {
	return []Variant{
		{ID: 1, Attributes: map[string]string{"color": "Black", "size": "M"}, Price: 150000, Stock: 5},
		{ID: 2, Attributes: map[string]string{"color": "Black", "size": "L"}, Price: 150000, Stock: 0},
		{ID: 3, Attributes: map[string]string{"color": "White", "size": "M"}, Price: 160000, Stock: 2},
	}
}

func TestFindVariant(t *testing.T) {
	variants := testVariants()

	tests := []struct {
		name      string
		selection map[string]string
		wantID    int64 // 0 means no match
	}{
		{"exact match", map[string]string{"color": "Black", "size": "M"}, 1},
		{"second combination", map[string]string{"color": "White", "size": "M"}, 3},
		{"no such combination", map[string]string{"color": "White", "size": "L"}, 0},
		{"partial selection never matches", map[string]string{"color": "Black"}, 0},
		{"extra attribute never matches", map[string]string{"color": "Black", "size": "M", "fit": "slim"}, 0},
		{"empty selection", map[string]string{}, 0},
		{"nil selection", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindVariant(variants, tt.selection)
			if tt.wantID == 0 {
				if got != nil {
					t.Errorf("FindVariant() = variant %d, want nil", got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindVariant() = nil, want variant %d", tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("FindVariant() = variant %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestHasVariantWithSelection(t *testing.T) {
	variants := testVariants()

	tests := []struct {
		name    string
		partial map[string]string
		want    bool
	}{
		{"color only", map[string]string{"color": "Black"}, true},
		{"size only", map[string]string{"size": "L"}, true},
		{"full valid combination", map[string]string{"color": "White", "size": "M"}, true},
		{"impossible combination", map[string]string{"color": "White", "size": "L"}, false},
		{"unknown value", map[string]string{"color": "Red"}, false},
		{"empty partial matches anything", map[string]string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasVariantWithSelection(variants, tt.partial)
			if got != tt.want {
				t.Errorf("HasVariantWithSelection(%v) = %v, want %v", tt.partial, got, tt.want)
			}
		})
	}

	if HasVariantWithSelection(nil, map[string]string{"color": "Black"}) {
		t.Error("HasVariantWithSelection(nil, ...) = true, want false")
	}
}

func TestVariantPrice(t *testing.T) {
	withVariants := &Product{ID: 10, Price: 100000, Variants: testVariants()}
	noVariants := &Product{ID: 11, Price: 90000}

	if price, ok := VariantPrice(withVariants, map[string]string{"color": "White", "size": "M"}); !ok || price != 160000 {
		t.Errorf("VariantPrice(matching) = (%d, %v), want (160000, true)", price, ok)
	}
	if _, ok := VariantPrice(withVariants, map[string]string{"color": "Red"}); ok {
		t.Error("VariantPrice(unresolvable selection) ok = true, want false")
	}
	if price, ok := VariantPrice(noVariants, nil); !ok || price != 90000 {
		t.Errorf("VariantPrice(no variants) = (%d, %v), want (90000, true)", price, ok)
	}
}
