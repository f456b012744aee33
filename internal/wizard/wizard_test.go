package wizard

import (
	"errors"
	"testing"

	"backoffice/internal/cart"
	"backoffice/internal/domain"
	"backoffice/internal/order"
)

var dosa = cart.Product{ID: "p1", Name: "Masala Dosa", Price: 100}

func TestNextFromProductsRequiresItems(t *testing.T) {
	w := New("t1")
	if err := w.Next(); !domain.IsValidation(err) {
		t.Fatalf("empty cart should reject forward transition, got %v", err)
	}
	if w.Step() != StepProducts {
		t.Fatalf("step should stay at products, got %s", w.Step())
	}

	w.AddItem(dosa, "")
	if err := w.Next(); err != nil {
		t.Fatalf("forward with items should pass: %v", err)
	}
	if w.Step() != StepCustomer {
		t.Fatalf("expected customer step, got %s", w.Step())
	}
}

func TestNextFromCustomerValidates(t *testing.T) {
	w := New("t2")
	w.AddItem(dosa, "")
	if err := w.Next(); err != nil {
		t.Fatalf("to customer: %v", err)
	}

	w.SetCustomer(order.Customer{Name: "Asha", Phone: "12345"})
	if err := w.Next(); !domain.IsValidation(err) {
		t.Fatalf("5-digit phone should reject transition, got %v", err)
	}
	if w.Step() != StepCustomer {
		t.Fatalf("step should stay at customer")
	}
	if w.Snapshot().FieldErrors["phone"] == "" {
		t.Fatalf("phone error should be surfaced")
	}

	w.SetCustomer(order.Customer{Name: "Asha", Phone: "9876543210"})
	if err := w.Next(); err != nil {
		t.Fatalf("valid phone and no email should pass: %v", err)
	}
	if w.Step() != StepReview {
		t.Fatalf("expected review step, got %s", w.Step())
	}
}

func TestPrevAlwaysAllowed(t *testing.T) {
	w := New("t3")
	w.AddItem(dosa, "")
	_ = w.Next()
	// Invalid customer details do not block going back.
	w.SetCustomer(order.Customer{Name: "X", Phone: "1"})
	if err := w.Prev(); err != nil {
		t.Fatalf("prev from customer: %v", err)
	}
	if w.Step() != StepProducts {
		t.Fatalf("expected products, got %s", w.Step())
	}
	if err := w.Prev(); !domain.IsConflict(err) {
		t.Fatalf("prev from the first step should report a conflict, got %v", err)
	}
}

func toReview(t *testing.T) *Wizard {
	t.Helper()
	w := New("t")
	w.AddItem(dosa, "")
	w.AddItem(dosa, "")
	if err := w.Next(); err != nil {
		t.Fatalf("to customer: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("to review: %v", err)
	}
	return w
}

func TestSubmitOnlyFromReview(t *testing.T) {
	w := New("t4")
	w.AddItem(dosa, "")
	if _, err := w.Submit(func(order.Draft) (string, error) { return "o1", nil }); !domain.IsConflict(err) {
		t.Fatalf("submit outside review should conflict, got %v", err)
	}
}

func TestSubmitSuccessIsTerminal(t *testing.T) {
	w := toReview(t)
	var got order.Draft
	id, err := w.Submit(func(d order.Draft) (string, error) {
		got = d
		return "ord-42", nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != "ord-42" || w.Step() != StepSubmitted {
		t.Fatalf("expected terminal submitted step with id, got %s %s", id, w.Step())
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("draft items wrong: %+v", got.Items)
	}
	if got.Customer != nil {
		t.Fatalf("blank customer should collapse to nil")
	}

	if _, err := w.Submit(func(order.Draft) (string, error) { return "o2", nil }); !domain.IsConflict(err) {
		t.Fatalf("re-submit after success should conflict, got %v", err)
	}
}

func TestSubmitFailureKeepsState(t *testing.T) {
	w := toReview(t)
	wantErr := domain.UpstreamError{Endpoint: "/orders", Status: 500}
	if _, err := w.Submit(func(order.Draft) (string, error) { return "", wantErr }); !domain.IsUpstream(err) {
		t.Fatalf("upstream failure should surface, got %v", err)
	}
	if w.Step() != StepReview {
		t.Fatalf("failure must keep the wizard in review, got %s", w.Step())
	}
	if w.Snapshot().Cart.ItemCount() != 2 {
		t.Fatalf("failure must not lose cart state")
	}

	// Retry is a new explicit action and is allowed.
	if _, err := w.Submit(func(order.Draft) (string, error) { return "o3", nil }); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestSubmitNotReentrant(t *testing.T) {
	w := toReview(t)
	inFlight := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _ = w.Submit(func(order.Draft) (string, error) {
			close(inFlight)
			<-release
			return "slow", nil
		})
	}()
	<-inFlight

	_, err := w.Submit(func(order.Draft) (string, error) { return "fast", nil })
	if !domain.IsConflict(err) {
		t.Fatalf("second submit while one is in flight must be suppressed, got %v", err)
	}
	close(release)
}

func TestDraftPayloadShape(t *testing.T) {
	w := toReview(t)
	w.SetCustomer(order.Customer{Name: "Asha", Phone: "9876543210"})
	w.SetDelivery(order.Delivery{Address: "12 MG Road", State: "Karnataka"})
	w.SetNotes("less spicy")
	if err := w.SetGSTRate(18); err != nil {
		t.Fatalf("gst: %v", err)
	}
	if err := w.SetRedeemPoints(10); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	d := w.Draft()
	if d.Customer == nil || d.Customer.Name != "Asha" {
		t.Fatalf("customer not attached: %+v", d.Customer)
	}
	if d.Delivery == nil || d.Delivery.State != "Karnataka" {
		t.Fatalf("delivery not attached: %+v", d.Delivery)
	}
	if d.GSTRate != 18 || d.RedeemPoints != 10 || d.Notes != "less spicy" {
		t.Fatalf("draft fields wrong: %+v", d)
	}

	if err := w.SetGSTRate(15); !domain.IsValidation(err) {
		t.Fatalf("rate outside the fixed set should fail, got %v", err)
	}
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	w := s.Create()
	if w.ID() == "" {
		t.Fatalf("session id missing")
	}
	got, err := s.Get(w.ID())
	if err != nil || got != w {
		t.Fatalf("lookup failed: %v", err)
	}
	s.Delete(w.ID())
	if _, err := s.Get(w.ID()); !domain.IsNotFound(err) {
		t.Fatalf("deleted session should be not found, got %v", err)
	}
	var notFound domain.NotFoundError
	if _, err := s.Get("missing"); !errors.As(err, &notFound) {
		t.Fatalf("unknown id should be not found, got %v", err)
	}
}
