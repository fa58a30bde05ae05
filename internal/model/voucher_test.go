package model

import (
	"testing"
	"time"
)

func TestVoucherDiscount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		voucher  Voucher
		subtotal int64
		want     int64
	}{
		{
			name:     "percent",
			voucher:  Voucher{Kind: VoucherPercent, Value: 10},
			subtotal: 250000,
			want:     25000,
		},
		{
			name:     "percent capped",
			voucher:  Voucher{Kind: VoucherPercent, Value: 50, MaxDiscount: 30000},
			subtotal: 250000,
			want:     30000,
		},
		{
			name:     "fixed",
			voucher:  Voucher{Kind: VoucherFixed, Value: 20000},
			subtotal: 250000,
			want:     20000,
		},
		{
			name:     "fixed never exceeds subtotal",
			voucher:  Voucher{Kind: VoucherFixed, Value: 300000},
			subtotal: 250000,
			want:     250000,
		},
		{
			name:     "below minimum order",
			voucher:  Voucher{Kind: VoucherFixed, Value: 20000, MinOrder: 500000},
			subtotal: 250000,
			want:     0,
		},
		{
			name:     "expired",
			voucher:  Voucher{Kind: VoucherPercent, Value: 10, ExpiresAt: now.Add(-time.Hour)},
			subtotal: 250000,
			want:     0,
		},
		{
			name:     "not yet expired",
			voucher:  Voucher{Kind: VoucherPercent, Value: 10, ExpiresAt: now.Add(time.Hour)},
			subtotal: 250000,
			want:     25000,
		},
		{
			name:     "unknown kind",
			voucher:  Voucher{Kind: "MYSTERY", Value: 10},
			subtotal: 250000,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.voucher.Discount(tt.subtotal, now)
			if got != tt.want {
				t.Errorf("Discount(%d) = %d, want %d", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestVoucherUsable(t *testing.T) {
	now := time.Now()
	v := Voucher{Kind: VoucherFixed, Value: 10000, MinOrder: 100000}

	if v.Usable(99999, now) {
		t.Error("Usable below MinOrder = true, want false")
	}
	if !v.Usable(100000, now) {
		t.Error("Usable at MinOrder = false, want true")
	}
}
