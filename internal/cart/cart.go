package cart

// Line is one purchasable selection: a product portion with a quantity.
// (ProductID, Portion) is the uniqueness key; Add merges on it by
// construction, so the cart can never hold two lines for the same key.
type Line struct {
	ProductID string  `json:"product_id"`
	Portion   string  `json:"portion"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
}

// Cart is an ordered list of lines. All operations are pure: they return a
// new cart and leave the receiver untouched.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Portion is the price variant a product is sold in.
type Portion struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// Product carries what the cart needs to price a selection.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Image    string
	Portions []Portion
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

func (c Cart) indexOf(productID, portion string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID && l.Portion == portion {
			return i
		}
	}
	return -1
}

// Add puts one unit of the product's portion in the cart. An existing line
// for the same (product, portion) key has its quantity incremented; otherwise
// a new line is appended at the portion's price. A product without declared
// portions sells as a synthetic "Regular" portion at its base price.
func Add(c Cart, p Product, portionType string) Cart {
	price := p.Price
	if portionType == "" {
		portionType = "Regular"
	}
	for _, pt := range p.Portions {
		if pt.Type == portionType {
			price = pt.Price
			break
		}
	}

	next := c.clone()
	if i := next.indexOf(p.ID, portionType); i >= 0 {
		next.Lines[i].Quantity++
		return next
	}
	next.Lines = append(next.Lines, Line{
		ProductID: p.ID,
		Portion:   portionType,
		Quantity:  1,
		Price:     price,
		Name:      p.Name,
		Image:     p.Image,
	})
	return next
}

// SetQuantity overwrites a line's quantity. A quantity below 1 removes the
// line, same as Remove.
func SetQuantity(c Cart, index, quantity int) Cart {
	if index < 0 || index >= len(c.Lines) {
		return c
	}
	if quantity < 1 {
		return Remove(c, index)
	}
	next := c.clone()
	next.Lines[index].Quantity = quantity
	return next
}

// Remove deletes the line at index.
func Remove(c Cart, index int) Cart {
	if index < 0 || index >= len(c.Lines) {
		return c
	}
	next := Cart{Lines: make([]Line, 0, len(c.Lines)-1)}
	next.Lines = append(next.Lines, c.Lines[:index]...)
	next.Lines = append(next.Lines, c.Lines[index+1:]...)
	return next
}

// QuantityOf reports the quantity held for a (product, portion) key, 0 when
// absent.
func QuantityOf(c Cart, productID, portion string) int {
	if i := c.indexOf(productID, portion); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// Subtotal is the sum of quantity times unit price over all lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.Lines {
		total += float64(l.Quantity) * l.Price
	}
	return total
}

// ItemCount is the total quantity across all lines.
func (c Cart) ItemCount() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart holds no quantity at all.
func (c Cart) Empty() bool {
	return c.ItemCount() == 0
}
