package order

import (
	"backoffice/internal/cart"
	"backoffice/internal/domain"
)

// PaymentMethod is how the customer settles the order.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayOnline PaymentMethod = "online"
)

// GSTRates is the fixed set of selectable tax rates, in percent.
var GSTRates = []int{0, 5, 12, 18, 28}

// ValidPaymentMethod reports whether m is one of the known methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCash, PayCard, PayOnline:
		return true
	}
	return false
}

// ValidGSTRate reports whether rate is in the selectable set.
func ValidGSTRate(rate int) bool {
	for _, r := range GSTRates {
		if r == rate {
			return true
		}
	}
	return false
}

// Customer is the optional customer attached to an order. Every field may be
// empty; a present phone or email still has to pass format validation.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Delivery is the optional delivery destination.
type Delivery struct {
	Address string `json:"address"`
	State   string `json:"state"`
}

// Draft aggregates everything the wizard collects before submission.
type Draft struct {
	Items        []cart.Line   `json:"items"`
	Customer     *Customer     `json:"customer_details"`
	Payment      PaymentMethod `json:"payment_method"`
	Delivery     *Delivery     `json:"delivery_details"`
	Notes        string        `json:"notes"`
	RedeemPoints int64         `json:"redeem_points"`
	GSTRate      int           `json:"gst_rate"`
}

// TaxPart is one half of the GST split, an opaque rate/amount pair.
type TaxPart struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Totals is the derived money summary of a draft.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	CGST      TaxPart `json:"cgst"`
	SGST      TaxPart `json:"sgst"`
	Total     float64 `json:"total"`
}

// ComputeTotals derives subtotal, tax, and total. GST splits evenly into CGST
// and SGST at half the rate each. Redemption is subtracted last and is not
// clamped: a redemption exceeding subtotal plus tax yields a negative total,
// matching current storefront behavior.
func (d Draft) ComputeTotals() Totals {
	var subtotal float64
	for _, l := range d.Items {
		subtotal += float64(l.Quantity) * l.Price
	}
	tax := subtotal * float64(d.GSTRate) / 100
	half := float64(d.GSTRate) / 2
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		CGST:      TaxPart{Rate: half, Amount: subtotal * half / 100},
		SGST:      TaxPart{Rate: half, Amount: subtotal * half / 100},
		Total:     subtotal + tax - float64(d.RedeemPoints),
	}
}

// Validate checks draft-level constraints that do not depend on wizard step.
func (d Draft) Validate() error {
	if !ValidPaymentMethod(d.Payment) {
		return domain.ValidationError{Field: "payment_method", Msg: "unknown payment method"}
	}
	if !ValidGSTRate(d.GSTRate) {
		return domain.ValidationError{Field: "gst_rate", Msg: "gst rate must be one of 0, 5, 12, 18, 28"}
	}
	if d.RedeemPoints < 0 {
		return domain.ValidationError{Field: "redeem_points", Msg: "redeem points cannot be negative"}
	}
	return nil
}
