package model

import "time"

// VoucherKind distinguishes percentage vouchers from fixed-amount vouchers.
type VoucherKind string

const (
	VoucherPercent VoucherKind = "PERCENT"
	VoucherFixed   VoucherKind = "FIXED"
)

// Voucher is a discount code. Value is a percentage (0-100) for PERCENT
// vouchers and a VND amount for FIXED vouchers. MaxDiscount caps percentage
// discounts; zero means uncapped. MinOrder is the minimum subtotal required
// to apply the voucher.
type Voucher struct {
	ID          int64       `json:"id"`
	Code        string      `json:"code"`
	Kind        VoucherKind `json:"kind"`
	Value       int64       `json:"value"`
	MinOrder    int64       `json:"minOrder,omitempty"`
	MaxDiscount int64       `json:"maxDiscount,omitempty"`
	ExpiresAt   time.Time   `json:"expiresAt,omitempty"`
}

// Usable reports whether the voucher applies to an order subtotal at the
// given time: not expired and subtotal meets the minimum.
func (v *Voucher) Usable(subtotal int64, now time.Time) bool {
	if !v.ExpiresAt.IsZero() && now.After(v.ExpiresAt) {
		return false
	}
	return subtotal >= v.MinOrder
}

// Discount computes the VND discount for a subtotal. The result never
// exceeds the subtotal, and percentage discounts respect MaxDiscount.
// Returns 0 for a voucher that is not usable.
func (v *Voucher) Discount(subtotal int64, now time.Time) int64 {
	if !v.Usable(subtotal, now) {
		return 0
	}

	var discount int64
	switch v.Kind {
	case VoucherPercent:
		discount = subtotal * v.Value / 100
		if v.MaxDiscount > 0 && discount > v.MaxDiscount {
			discount = v.MaxDiscount
		}
	case VoucherFixed:
		discount = v.Value
	default:
		return 0
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
