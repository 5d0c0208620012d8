package repos

import (
	"robomart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, order_number, customer_name, customer_phone, customer_email, shipping_address,
  items_json, subtotal, shipping_fee, total, status, notes, whatsapp_message,
  COALESCE(user_id,'') AS user_id, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, order_number, customer_name, customer_phone, customer_email, shipping_address,
	     items_json, subtotal, shipping_fee, total, status, notes, whatsapp_message, user_id, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerPhone, o.CustomerEmail, o.ShippingAddress,
		o.ItemsJSON, o.Subtotal.String(), o.ShippingFee.String(), o.Total.String(),
		o.Status, o.Notes, o.WhatsAppMessage, o.UserID)
	return err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

// GetByNumber is the tracking-page lookup: exact order_number match.
func (r *OrderRepo) GetByNumber(orderNumber string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE order_number = ?`, orderNumber)
	return o, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	return err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

// Revenue sums order totals for the dashboard card.
func (r *OrderRepo) Revenue() (string, error) {
	var total string
	err := r.db.Get(&total, `SELECT COALESCE(SUM(total),0) FROM orders`)
	return total, err
}
