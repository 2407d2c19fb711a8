package domain

// MaxQuantity is the largest quantity a cart line may hold, the largest integer a JSON client can represent exactly.
const MaxQuantity = 1<<53 - 1

type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CartViewItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
	LineTotal float64 `json:"lineTotal"`
}

// CartView is a cart joined against the catalog at read time.
type CartView struct {
	Items []CartViewItem `json:"items"`
	Total float64        `json:"total"`
	// Unavailable lists stored lines whose product no longer exists in the catalog.
	Unavailable []CartLine `json:"unavailable,omitempty"`
}

// EmptyCartView is what an absent or cleared cart looks like.
func EmptyCartView() *CartView {
	return &CartView{Items: []CartViewItem{}, Total: 0}
}

// BuildCartView joins lines against the catalog through lookup, keeping line order.
func BuildCartView(lines []CartLine, lookup func(productID int64) (Product, bool)) *CartView {
	view := EmptyCartView()
	totals := make([]float64, 0, len(lines))
	for _, line := range lines {
		product, ok := lookup(line.ProductID)
		if !ok {
			view.Unavailable = append(view.Unavailable, line)
			continue
		}
		lineTotal := LineTotal(product.Price, line.Quantity)
		view.Items = append(view.Items, CartViewItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Product:   product,
			LineTotal: lineTotal,
		})
		totals = append(totals, lineTotal)
	}
	view.Total = SumTotals(totals...)
	return view
}
