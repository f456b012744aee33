package catalog

import (
	"context"
	"testing"

	"backoffice/internal/upstream"
)

func snapshot(t *testing.T, products []upstream.Product) *Service {
	t.Helper()
	s := &Service{
		FetchProducts:  func(context.Context) ([]upstream.Product, error) { return products, nil },
		FetchCustomers: func(context.Context) ([]upstream.Customer, error) { return nil, nil },
	}
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return s
}

func TestNormalizeFillsGaps(t *testing.T) {
	p := Normalize(upstream.Product{ID: "p1", Name: "Chai", Price: 20})
	if len(p.Portions) != 1 || p.Portions[0].Type != "Regular" || p.Portions[0].Price != 20 {
		t.Fatalf("synthetic Regular portion missing: %+v", p.Portions)
	}
	if p.ImageURL != PlaceholderImage {
		t.Fatalf("placeholder image missing: %s", p.ImageURL)
	}
	if p.Category != "Uncategorized" {
		t.Fatalf("category fallback missing: %s", p.Category)
	}

	p = Normalize(upstream.Product{ID: "p2", ImageURL: "https://x/imgres?q=1", Category: "Drinks"})
	if p.ImageURL != PlaceholderImage {
		t.Fatalf("junk image reference should be replaced")
	}
	if p.Category != "Drinks" {
		t.Fatalf("declared category lost")
	}
}

func TestCategories(t *testing.T) {
	s := snapshot(t, []upstream.Product{
		{ID: "1", Name: "Dosa", Category: "Tiffin"},
		{ID: "2", Name: "Chai"},
		{ID: "3", Name: "Idli", Category: "Tiffin"},
		{ID: "4", Name: "Coffee", Category: "Drinks"},
	})
	got := s.Categories()
	want := []string{"All", "Tiffin", "Uncategorized", "Drinks"}
	if len(got) != len(want) {
		t.Fatalf("categories: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories: got %v want %v", got, want)
		}
	}
}

func TestBrowse(t *testing.T) {
	s := snapshot(t, []upstream.Product{
		{ID: "1", Name: "Masala Dosa", Category: "Tiffin", Description: "crispy"},
		{ID: "2", Name: "Filter Coffee", Category: "Drinks", Description: "strong and hot"},
		{ID: "3", Name: "Idli", Category: "Tiffin"},
	})

	if got := s.Browse("Tiffin", ""); len(got) != 2 {
		t.Fatalf("category browse wrong: %d", len(got))
	}
	if got := s.Browse("All", ""); len(got) != 3 {
		t.Fatalf("All should pass everything: %d", len(got))
	}

	// A non-empty search matches name or description, case-insensitively,
	// across all categories.
	got := s.Browse("Tiffin", "HOT")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("search should span categories: %+v", got)
	}
	if got := s.Browse("", "dosa"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("name search wrong: %+v", got)
	}
}

func TestCartProduct(t *testing.T) {
	s := snapshot(t, []upstream.Product{
		{ID: "1", Name: "Dosa", Price: 100, Portions: []upstream.Portion{{Type: "Half", Price: 60}}},
	})
	p, ok := s.CartProduct("1")
	if !ok || p.Portions[0].Price != 60 {
		t.Fatalf("cart product mapping wrong: %+v", p)
	}
	if _, ok := s.CartProduct("missing"); ok {
		t.Fatalf("unknown id should not resolve")
	}
}

func TestRefreshDiscardsStaleResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	call := 0

	s := &Service{
		FetchCustomers: func(context.Context) ([]upstream.Customer, error) { return nil, nil },
	}
	s.FetchProducts = func(context.Context) ([]upstream.Product, error) {
		call++
		if call == 1 {
			close(started)
			<-release
			return []upstream.Product{{ID: "stale"}}, nil
		}
		return []upstream.Product{{ID: "fresh"}}, nil
	}

	done := make(chan struct{})
	go func() {
		_ = s.Refresh(context.Background())
		close(done)
	}()
	<-started

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	close(release)
	<-done

	got := s.Products()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("stale refresh overwrote newer snapshot: %+v", got)
	}
}
