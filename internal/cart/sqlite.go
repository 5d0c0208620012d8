package cart

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// SQLiteAdapter stores cart lines in the cart_items table keyed by session,
// so a basket survives a server restart the way the browser cart survives a
// refresh mid-checkout.
type SQLiteAdapter struct{ db *sqlx.DB }

func NewSQLiteAdapter(db *sqlx.DB) *SQLiteAdapter { return &SQLiteAdapter{db: db} }

type itemRow struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Price     string `db:"price"`
	Qty       int    `db:"qty"`
	Image     string `db:"image"`
}

func (a *SQLiteAdapter) Load(sessionID string) (Cart, error) {
	var rows []itemRow
	err := a.db.Select(&rows, `
	  SELECT product_id, name, price, qty, image
	  FROM cart_items
	  WHERE session_id = ?
	  ORDER BY updated_at`, sessionID)
	if err != nil {
		return Cart{}, err
	}
	var c Cart
	for _, row := range rows {
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return Cart{}, err
		}
		c.Items = append(c.Items, Item{
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     price,
			Quantity:  row.Qty,
			Image:     row.Image,
		})
	}
	return c, nil
}

// Save replaces the session's lines wholesale; the cart is small and the
// rewrite keeps line order and removals trivially correct.
func (a *SQLiteAdapter) Save(sessionID string, c Cart) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	for _, it := range c.Items {
		if _, err := tx.Exec(`
		  INSERT INTO cart_items(session_id, product_id, name, price, qty, image, updated_at)
		  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
			sessionID, it.ProductID, it.Name, it.Price.String(), it.Quantity, it.Image); err != nil {
			return err
		}
	}
	return tx.Commit()
}
