package models

import "github.com/shopspring/decimal"

// PaymentRequest is one signed payment attempt. JSON names are the gateway field names.
type PaymentRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionUUID  string          `json:"transaction_uuid"`
	ProductCode      string          `json:"product_code"`
	ServiceCharge    decimal.Decimal `json:"product_service_charge"`
	DeliveryCharge   decimal.Decimal `json:"product_delivery_charge"`
	SuccessURL       string          `json:"success_url"`
	FailureURL       string          `json:"failure_url"`
	SignedFieldNames string          `json:"signed_field_names"`
	Signature        string          `json:"signature"`
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailure PaymentStatus = "failure"
)

type PaymentResponse struct {
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	Message       string        `json:"message"`
}
