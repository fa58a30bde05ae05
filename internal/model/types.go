// Package model defines the storefront domain types shared by the API client,
// the state stores, and the stylist proxy. Field names mirror the backend JSON
// contract; this package never talks to the network itself.
package model

import "time"

// User is the authenticated storefront account.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Verified  bool   `json:"verified"`
	Role      string `json:"role,omitempty"`
}

// Product is a catalog entry. Price is the base price in VND; variants may
// override it per attribute combination.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Price       int64     `json:"price"`
	ImageURLs   []string  `json:"imageUrls,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	Sold        int       `json:"sold,omitempty"`
}

// Variant is a purchasable combination of product attributes
// (e.g. color=Black, size=L) with its own price and stock.
type Variant struct {
	ID         int64             `json:"id"`
	Attributes map[string]string `json:"attributes"`
	Price      int64             `json:"price"`
	Stock      int               `json:"stock"`
	ImageURL   string            `json:"imageUrl,omitempty"`
}

// CartLine is one row of the server-side cart.
type CartLine struct {
	ID        int64             `json:"id"`
	ProductID int64             `json:"productId"`
	VariantID int64             `json:"variantId,omitempty"`
	Name      string            `json:"name"`
	Selection map[string]string `json:"selection,omitempty"`
	UnitPrice int64             `json:"unitPrice"`
	Quantity  int               `json:"quantity"`
	ImageURL  string            `json:"imageUrl,omitempty"`
}

// OrderStatus enumerates the order lifecycle states exposed by the backend.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipping  OrderStatus = "SHIPPING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderReturned  OrderStatus = "RETURNED"
)

// Order is a placed order with its lines and amounts.
type Order struct {
	ID          int64       `json:"id"`
	Status      OrderStatus `json:"status"`
	Items       []OrderItem `json:"items"`
	Subtotal    int64       `json:"subtotal"`
	ShippingFee int64       `json:"shippingFee"`
	Discount    int64       `json:"discount"`
	Total       int64       `json:"total"`
	VoucherCode string      `json:"voucherCode,omitempty"`
	Address     *Address    `json:"address,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OrderItem is a snapshot of a cart line at order time.
type OrderItem struct {
	ProductID int64             `json:"productId"`
	VariantID int64             `json:"variantId,omitempty"`
	Name      string            `json:"name"`
	Selection map[string]string `json:"selection,omitempty"`
	UnitPrice int64             `json:"unitPrice"`
	Quantity  int               `json:"quantity"`
}

// Address is a delivery address. Province/District/Ward IDs reference the
// shipping provider's location catalog.
type Address struct {
	ID         int64  `json:"id"`
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	WardCode   string `json:"wardCode,omitempty"`
	DistrictID int    `json:"districtId,omitempty"`
	ProvinceID int    `json:"provinceId,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Default    bool   `json:"default"`
}

// Review is a product review left by a buyer.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentInfo is the result of initiating a payment for an order.
// For VNPay the PayURL redirects the buyer to the provider's page.
type PaymentInfo struct {
	OrderID int64  `json:"orderId"`
	Method  string `json:"method"`
	PayURL  string `json:"payUrl,omitempty"`
	Status  string `json:"status,omitempty"`
}

// PaymentVerification is the outcome of checking a VNPay return URL.
type PaymentVerification struct {
	OrderID int64  `json:"orderId"`
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
