package cart

import (
	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// LineItem is one product entry in a cart. Display fields and the stock
// ceiling are captured at add-time and not re-fetched; checkout revalidates
// against live stock before an order is created.
type LineItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Slug      string          `json:"slug"`
	Qty       int             `json:"qty"`
	MaxQty    int             `json:"maxQty"`
}

// CheckoutItem is the minimal line representation sent to order creation.
type CheckoutItem struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

// Cart is an ordered collection of line items, unique by product id.
// Every mutation clamps quantities into [1, MaxQty] rather than erroring;
// totals are recomputed on demand and never cached. Cart performs no I/O.
type Cart struct {
	Items []LineItem `json:"items"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Items: []LineItem{}}
}

// AddItem merges the product into the cart. Re-adding an existing product
// increments its quantity instead of creating a second row; the result is
// silently clamped to the product's current stock. Products without stock
// are ignored so the qty >= 1 invariant holds for every row.
func (c *Cart) AddItem(product models.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	if product.StockQty < 1 {
		return
	}

	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Qty = minInt(c.Items[i].Qty+qty, product.StockQty)
			c.Items[i].MaxQty = product.StockQty
			return
		}
	}

	c.Items = append(c.Items, LineItem{
		ProductID: product.ID,
		Name:      product.NameAr,
		Price:     product.Price,
		Image:     product.PrimaryImageURL(),
		Slug:      product.Slug,
		Qty:       minInt(qty, product.StockQty),
		MaxQty:    product.StockQty,
	})
}

// RemoveItem drops the matching line item. Absent ids are a no-op.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQty sets the quantity for the matching item, clamped into
// [1, MaxQty]. Absent ids are a no-op.
func (c *Cart) UpdateQty(productID int64, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Qty = maxInt(1, minInt(qty, c.Items[i].MaxQty))
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// TotalItems returns the sum of all quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Qty
	}
	return total
}

// TotalPrice returns the sum of price times quantity across all items.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return total
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CheckoutItems derives the order submission payload.
func (c *Cart) CheckoutItems() []CheckoutItem {
	items := make([]CheckoutItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CheckoutItem{ProductID: item.ProductID, Qty: item.Qty})
	}
	return items
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
