package events

import (
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/google/uuid"
)

const EventTypeOrderPlaced = "OrderPlaced"

// OrderPlaced is published once per committed order.
type OrderPlaced struct {
	EventID   string             `json:"eventId"`
	OrderID   int64              `json:"orderId"`
	UserID    int64              `json:"userId"`
	Items     []domain.OrderItem `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"createdAt"`
}

func NewOrderPlaced(order domain.Order) OrderPlaced {
	return OrderPlaced{
		EventID:   uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Items:     order.Items,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
}
