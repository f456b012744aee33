package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/cart"
	"backoffice/internal/domain"
	"backoffice/internal/order"
	"backoffice/internal/query"
)

func TestListOrdersCarriesQueryState(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":       []map[string]any{{"_id": "o1", "status": "pending"}},
			"pagination": query.NewMeta(1, 1, 10),
		})
	}))
	defer srv.Close()

	s := query.New(10)
	s = query.ApplySort(s, "order_date")
	s = query.ApplySort(s, "order_date")
	s = query.ApplyFilter(s, "status", "pending")

	c := NewClient(srv.URL, "")
	rows, meta, err := c.ListOrders(context.Background(), s)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(rows) != 1 || rows[0]["_id"] != "o1" {
		t.Fatalf("rows wrong: %v", rows)
	}
	if meta.Total != 1 {
		t.Fatalf("meta not relayed: %+v", meta)
	}
	if gotQuery["page"] != "1" || gotQuery["limit"] != "10" {
		t.Fatalf("page params wrong: %v", gotQuery)
	}
	if gotQuery["sort_by"] != "order_date" || gotQuery["sort_order"] != "desc" {
		t.Fatalf("sort params wrong: %v", gotQuery)
	}
	if gotQuery["status"] != "pending" {
		t.Fatalf("filter param wrong: %v", gotQuery)
	}
}

func TestActiveProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/active" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "p1", "name": "Masala Dosa", "price": 100, "portions": []map[string]any{{"type": "Half", "price": 60}}},
			{"_id": "p2", "name": "Chai", "price": 20},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	got, err := c.ActiveProducts(context.Background())
	if err != nil {
		t.Fatalf("ActiveProducts: %v", err)
	}
	if len(got) != 2 || got[0].Portions[0].Type != "Half" {
		t.Fatalf("products decoded wrong: %+v", got)
	}
	if got[1].Portions != nil {
		t.Fatalf("absent portions should stay nil")
	}
}

func TestCreateOrderSendsBearerAndBody(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order":{"_id":"ord-7"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123")
	draft := order.Draft{
		Items:   []cart.Line{{ProductID: "p1", Portion: "Regular", Quantity: 2, Price: 100}},
		Payment: order.PayCash,
		GSTRate: 18,
	}
	id, err := c.CreateOrder(context.Background(), draft)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if id != "ord-7" {
		t.Fatalf("order id: got %s", id)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header wrong: %q", gotAuth)
	}
	if gotBody["payment_method"] != "cash" || gotBody["gst_rate"] != float64(18) {
		t.Fatalf("payload wrong: %v", gotBody)
	}
	if gotBody["customer_details"] != nil {
		t.Fatalf("blank customer should serialize as null")
	}
}

func TestNon2xxSurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.ActiveProducts(context.Background())
	ue, ok := domain.AsUpstream(err)
	if !ok {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if ue.Status != http.StatusBadGateway {
		t.Fatalf("status not carried: %+v", ue)
	}
}

func TestOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Order(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
