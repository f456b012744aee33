package wizard

import (
	"sync"

	"backoffice/internal/cart"
	"backoffice/internal/domain"
	"backoffice/internal/order"
)

// Step is the wizard's position in the order-creation flow.
type Step string

const (
	StepProducts Step = "products"
	StepCustomer Step = "customer"
	StepReview   Step = "review"
	// StepSubmitted is terminal; it carries the created order's id.
	StepSubmitted Step = "submitted"
)

var forward = map[Step]Step{
	StepProducts: StepCustomer,
	StepCustomer: StepReview,
}

var backward = map[Step]Step{
	StepCustomer: StepProducts,
	StepReview:   StepCustomer,
}

// SubmitFunc invokes the external order-creation API exactly once and returns
// the created order's id.
type SubmitFunc func(d order.Draft) (string, error)

// Wizard is one order-creation session: a cart plus the customer, payment,
// and delivery details collected across the three steps. Steps advance only
// forward through their guards; backward transitions are unconditional.
type Wizard struct {
	mu sync.Mutex

	id           string
	step         Step
	cart         cart.Cart
	customer     order.Customer
	payment      order.PaymentMethod
	delivery     order.Delivery
	notes        string
	redeemPoints int64
	gstRate      int
	fieldErrors  order.FieldErrors
	orderID      string
	submitting   bool
}

// State is a point-in-time copy of the wizard, safe to serialize.
type State struct {
	ID           string              `json:"id"`
	Step         Step                `json:"step"`
	Cart         cart.Cart           `json:"cart"`
	Customer     order.Customer      `json:"customer"`
	Payment      order.PaymentMethod `json:"payment_method"`
	Delivery     order.Delivery      `json:"delivery_details"`
	Notes        string              `json:"notes"`
	RedeemPoints int64               `json:"redeem_points"`
	GSTRate      int                 `json:"gst_rate"`
	FieldErrors  order.FieldErrors   `json:"field_errors"`
	Totals       order.Totals        `json:"totals"`
	OrderID      string              `json:"order_id,omitempty"`
	Submitting   bool                `json:"submitting"`
}

// New starts a session at the products step with cash payment preselected.
func New(id string) *Wizard {
	return &Wizard{
		id:          id,
		step:        StepProducts,
		payment:     order.PayCash,
		fieldErrors: order.FieldErrors{},
	}
}

func (w *Wizard) ID() string {
	return w.id
}

// Step reports the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// AddItem puts one unit of the product's portion in the cart.
func (w *Wizard) AddItem(p cart.Product, portion string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cart = cart.Add(w.cart, p, portion)
}

// SetQuantity overwrites a line's quantity; below 1 removes the line.
func (w *Wizard) SetQuantity(index, quantity int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cart = cart.SetQuantity(w.cart, index, quantity)
}

// RemoveItem deletes a cart line.
func (w *Wizard) RemoveItem(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cart = cart.Remove(w.cart, index)
}

// SetCustomer replaces the customer fields and re-runs format validation so
// field errors surface as the operator types.
func (w *Wizard) SetCustomer(c order.Customer) order.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.customer = c
	w.fieldErrors = order.ValidateCustomer(c)
	return w.fieldErrors
}

func (w *Wizard) SetPayment(m order.PaymentMethod) error {
	if !order.ValidPaymentMethod(m) {
		return domain.ValidationError{Field: "payment_method", Msg: "unknown payment method"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.payment = m
	return nil
}

func (w *Wizard) SetDelivery(d order.Delivery) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delivery = d
}

func (w *Wizard) SetNotes(notes string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notes = notes
}

func (w *Wizard) SetRedeemPoints(points int64) error {
	if points < 0 {
		return domain.ValidationError{Field: "redeem_points", Msg: "redeem points cannot be negative"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.redeemPoints = points
	return nil
}

func (w *Wizard) SetGSTRate(rate int) error {
	if !order.ValidGSTRate(rate) {
		return domain.ValidationError{Field: "gst_rate", Msg: "gst rate must be one of 0, 5, 12, 18, 28"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gstRate = rate
	return nil
}

// Next advances one step when the current step's guard passes. A rejected
// transition returns a validation error and leaves the step unchanged.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, ok := forward[w.step]
	if !ok {
		return domain.ConflictError{Resource: "wizard", Msg: "no forward step from " + string(w.step)}
	}

	switch w.step {
	case StepProducts:
		if w.cart.Empty() {
			return domain.ValidationError{Field: "cart", Msg: "add at least one item before continuing"}
		}
	case StepCustomer:
		w.fieldErrors = order.ValidateCustomer(w.customer)
		if !w.fieldErrors.Valid() {
			return domain.ValidationError{Field: "customer", Msg: "fix customer details before continuing"}
		}
	}

	w.step = next
	return nil
}

// Prev moves one step back, unconditionally. Validation is not re-run.
func (w *Wizard) Prev() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev, ok := backward[w.step]
	if !ok {
		return domain.ConflictError{Resource: "wizard", Msg: "no backward step from " + string(w.step)}
	}
	w.step = prev
	return nil
}

// Draft assembles the submission payload. Customer and delivery collapse to
// nil when the operator left them blank, matching the upstream contract.
func (w *Wizard) Draft() order.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draftLocked()
}

func (w *Wizard) draftLocked() order.Draft {
	d := order.Draft{
		Items:        append([]cart.Line(nil), w.cart.Lines...),
		Payment:      w.payment,
		Notes:        w.notes,
		RedeemPoints: w.redeemPoints,
		GSTRate:      w.gstRate,
	}
	if w.customer.Name != "" {
		c := w.customer
		d.Customer = &c
	}
	if w.delivery.Address != "" {
		dd := w.delivery
		d.Delivery = &dd
	}
	return d
}

// Submit sends the order once. Only allowed from the review step with a
// non-empty cart. A second submit while one is in flight is suppressed. On
// failure the wizard stays in review with its state intact; on success it
// reaches the terminal submitted step carrying the created order's id.
func (w *Wizard) Submit(submit SubmitFunc) (string, error) {
	w.mu.Lock()
	if w.step == StepSubmitted {
		w.mu.Unlock()
		return "", domain.ConflictError{Resource: "order", Msg: "order already submitted"}
	}
	if w.step != StepReview {
		w.mu.Unlock()
		return "", domain.ConflictError{Resource: "wizard", Msg: "submission is only allowed from the review step"}
	}
	if w.cart.Empty() {
		w.mu.Unlock()
		return "", domain.ValidationError{Field: "cart", Msg: "cannot submit an empty order"}
	}
	if w.submitting {
		w.mu.Unlock()
		return "", domain.ConflictError{Resource: "order", Msg: "submission already in progress"}
	}
	w.submitting = true
	draft := w.draftLocked()
	w.mu.Unlock()

	orderID, err := submit(draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return "", err
	}
	w.step = StepSubmitted
	w.orderID = orderID
	return orderID, nil
}

// Snapshot copies the wizard for rendering, with totals derived.
func (w *Wizard) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State{
		ID:           w.id,
		Step:         w.step,
		Cart:         w.cart,
		Customer:     w.customer,
		Payment:      w.payment,
		Delivery:     w.delivery,
		Notes:        w.notes,
		RedeemPoints: w.redeemPoints,
		GSTRate:      w.gstRate,
		FieldErrors:  w.fieldErrors,
		Totals:       w.draftLocked().ComputeTotals(),
		OrderID:      w.orderID,
		Submitting:   w.submitting,
	}
}
