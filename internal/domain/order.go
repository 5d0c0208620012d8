package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Order statuses as stored. "dispatched" is an admin alias that maps onto the
// shipped tracking stage.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusDispatched = "dispatched"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// TrackingStages is the ordered progress list shown on the tracking page.
var TrackingStages = []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered}

// StageIndex maps a status to its position in TrackingStages. Cancelled (or
// anything unknown) returns -1 and gets the greyed-out treatment.
func StageIndex(status string) int {
	if status == StatusDispatched {
		status = StatusShipped
	}
	for i, s := range TrackingStages {
		if s == status {
			return i
		}
	}
	return -1
}

// OrderItem is a frozen snapshot of a product at purchase time. It is never
// re-joined against the live products table: historical invoices must show
// price-at-purchase.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (it OrderItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Order struct {
	ID              string          `db:"id"`
	OrderNumber     string          `db:"order_number"`
	CustomerName    string          `db:"customer_name"`
	CustomerPhone   string          `db:"customer_phone"`
	CustomerEmail   string          `db:"customer_email"`
	ShippingAddress string          `db:"shipping_address"`
	ItemsJSON       string          `db:"items_json"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	ShippingFee     decimal.Decimal `db:"shipping_fee"`
	Total           decimal.Decimal `db:"total"`
	Status          string          `db:"status"`
	Notes           string          `db:"notes"`
	WhatsAppMessage string          `db:"whatsapp_message"`
	UserID          string          `db:"user_id"`
	CreatedAt       string          `db:"created_at"`
	UpdatedAt       string          `db:"updated_at"`
}

func (o Order) Items() []OrderItem {
	var out []OrderItem
	_ = json.Unmarshal([]byte(o.ItemsJSON), &out)
	return out
}

func EncodeItems(items []OrderItem) string {
	b, _ := json.Marshal(items)
	return string(b)
}
