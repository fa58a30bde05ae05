package shipping

import (
	"encoding/json"
	"strings"

	"shopfront/internal/model"
)

// Province is a top-level location in the provider's catalog.
type Province struct {
	ProvinceID int    `json:"ProvinceID"`
	Name       string `json:"ProvinceName"`
}

// District belongs to a province.
type District struct {
	DistrictID int    `json:"DistrictID"`
	ProvinceID int    `json:"ProvinceID"`
	Name       string `json:"DistrictName"`
}

// Ward belongs to a district. WardCode is a string in the provider API.
type Ward struct {
	WardCode   string `json:"WardCode"`
	DistrictID int    `json:"DistrictID"`
	Name       string `json:"WardName"`
}

// Service is a delivery service available between two districts.
type Service struct {
	ServiceID   int    `json:"service_id"`
	ServiceType int    `json:"service_type_id"`
	Name        string `json:"short_name"`
}

// FeeRequest asks for a delivery quote. Dimensions in cm, weight in grams,
// InsuranceValue in VND.
type FeeRequest struct {
	ServiceID      int    `json:"service_id,omitempty"`
	ServiceTypeID  int    `json:"service_type_id,omitempty"`
	FromDistrictID int    `json:"from_district_id,omitempty"`
	ToDistrictID   int    `json:"to_district_id"`
	ToWardCode     string `json:"to_ward_code"`
	Weight         int    `json:"weight"`
	Length         int    `json:"length,omitempty"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
	InsuranceValue int64  `json:"insurance_value,omitempty"`
	CouponCode     string `json:"coupon,omitempty"`
}

// FeeResponse is a delivery quote in VND.
type FeeResponse struct {
	Total        int64 `json:"total"`
	ServiceFee   int64 `json:"service_fee"`
	InsuranceFee int64 `json:"insurance_fee"`
}

// UnmarshalJSON tolerates fee amounts arriving as either JSON numbers or
// quoted strings. Older provider endpoints return fees as strings.
func (f *FeeResponse) UnmarshalJSON(b []byte) error {
	var raw struct {
		Total        json.RawMessage `json:"total"`
		ServiceFee   json.RawMessage `json:"service_fee"`
		InsuranceFee json.RawMessage `json:"insurance_fee"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	f.Total = feeAmount(raw.Total)
	f.ServiceFee = feeAmount(raw.ServiceFee)
	f.InsuranceFee = feeAmount(raw.InsuranceFee)
	return nil
}

func feeAmount(raw json.RawMessage) int64 {
	return model.ParseVND(strings.Trim(string(raw), `"`))
}

// ghnEnvelope is the provider's uniform response wrapper.
type ghnEnvelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
