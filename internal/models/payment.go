package models

import "encoding/json"

// PaymentCharge is the input to the payment simulator (component D).
type PaymentCharge struct {
	UserID   int64
	Amount   float64
	Currency string
	Token    string
}

// PaymentOutcome is the deterministic output of the payment simulator.
type PaymentOutcome struct {
	Success     bool
	ProviderRef string
	ErrorType   string
	RawResponse json.RawMessage
}
