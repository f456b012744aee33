package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"backoffice/internal/cart"
	"backoffice/internal/upstream"
	"backoffice/internal/utils"
)

// PlaceholderImage stands in for products whose image reference is absent or
// unusable.
const PlaceholderImage = "https://via.placeholder.com/150"

// Service keeps an in-process snapshot of the sellable catalog and the known
// customers. The upstream API stays the source of truth; the snapshot exists
// so the order wizard can browse, filter, and search without a round trip per
// keystroke.
type Service struct {
	FetchProducts  func(ctx context.Context) ([]upstream.Product, error)
	FetchCustomers func(ctx context.Context) ([]upstream.Customer, error)
	RequestID      string

	mu        sync.Mutex
	products  []upstream.Product
	customers []upstream.Customer
	token     string
}

// NewService wires the snapshot to the upstream client.
func NewService(client *upstream.Client) *Service {
	return &Service{
		FetchProducts:  client.ActiveProducts,
		FetchCustomers: client.Customers,
	}
}

// Refresh replaces the snapshot from upstream. Refreshes are sequenced by a
// correlation token: when a newer refresh starts while this one is fetching,
// the slower result is discarded instead of overwriting fresher data.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	token := uuid.NewString()
	s.token = token
	s.mu.Unlock()

	products, err := s.FetchProducts(ctx)
	if err != nil {
		return err
	}
	customers, err := s.FetchCustomers(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		products[i] = Normalize(products[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		return nil
	}
	s.products = products
	s.customers = customers
	utils.LogEvent(s.RequestID, "catalog", "refresh",
		fmt.Sprintf("products=%d customers=%d", len(products), len(customers)))
	return nil
}

// Normalize fills the shape gaps the storefront data is known to have: a
// missing portion list becomes a synthetic Regular portion at the base price,
// and an absent or junk image reference becomes the placeholder.
func Normalize(p upstream.Product) upstream.Product {
	if len(p.Portions) == 0 {
		p.Portions = []upstream.Portion{{Type: "Regular", Price: p.Price}}
	}
	if p.ImageURL == "" || strings.Contains(p.ImageURL, "imgres") {
		p.ImageURL = PlaceholderImage
	}
	if p.Category == "" {
		p.Category = "Uncategorized"
	}
	return p
}

// Products returns the snapshot.
func (s *Service) Products() []upstream.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]upstream.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Customers returns the snapshot.
func (s *Service) Customers() []upstream.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]upstream.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Categories lists "All" plus every distinct category, in first-seen order.
func (s *Service) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []string{"All"}
	seen := map[string]bool{}
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Browse filters the snapshot the way the order wizard's products step does:
// a non-empty search matches name or description case-insensitively across
// all categories; otherwise the active category constrains the list ("All"
// passes everything).
func (s *Service) Browse(category, search string) []upstream.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []upstream.Product{}
	if q := strings.ToLower(strings.TrimSpace(search)); q != "" {
		for _, p := range s.products {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) {
				out = append(out, p)
			}
		}
		return out
	}

	for _, p := range s.products {
		if category == "" || category == "All" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// CartProduct resolves a product id into the cart's pricing shape.
func (s *Service) CartProduct(id string) (cart.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID != id {
			continue
		}
		out := cart.Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Image: p.ImageURL,
		}
		for _, pt := range p.Portions {
			out.Portions = append(out.Portions, cart.Portion{Type: pt.Type, Price: pt.Price})
		}
		return out, true
	}
	return cart.Product{}, false
}
