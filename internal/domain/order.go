package domain

import "time"

type OrderStatus string

const OrderStatusPlaced OrderStatus = "placed"

// DeletedProductName stands in for products removed from the catalog before checkout.
const DeletedProductName = "Deleted product"

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SnapshotOrderItems freezes cart lines with the names and prices the catalog holds right now.
// Lines whose product is gone are kept with a placeholder name and a zero price.
func SnapshotOrderItems(lines []CartLine, lookup func(productID int64) (Product, bool)) ([]OrderItem, float64) {
	items := make([]OrderItem, 0, len(lines))
	totals := make([]float64, 0, len(lines))
	for _, line := range lines {
		name, price := DeletedProductName, 0.0
		if product, ok := lookup(line.ProductID); ok {
			name, price = product.Name, product.Price
		}
		lineTotal := LineTotal(price, line.Quantity)
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      name,
			Price:     price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		totals = append(totals, lineTotal)
	}
	return items, SumTotals(totals...)
}
