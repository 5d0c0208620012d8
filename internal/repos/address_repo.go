package repos

import (
	"robomart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

// ListByUser returns the user's saved addresses, default first.
func (r *AddressRepo) ListByUser(userID string) ([]domain.SavedAddress, error) {
	var out []domain.SavedAddress
	err := r.db.Select(&out, `
	  SELECT id, user_id, label, address, phone, pincode, is_default, created_at
	  FROM user_addresses
	  WHERE user_id = ?
	  ORDER BY is_default DESC, created_at DESC`, userID)
	return out, err
}

func (r *AddressRepo) Create(a domain.SavedAddress) error {
	_, err := r.db.Exec(`
	  INSERT INTO user_addresses(id, user_id, label, address, phone, pincode, is_default)
	  VALUES(?,?,?,?,?,?,?)`,
		a.ID, a.UserID, a.Label, a.Address, a.Phone, a.Pincode, a.IsDefault)
	return err
}

// Delete removes an address only when it belongs to the given user.
func (r *AddressRepo) Delete(id, userID string) error {
	_, err := r.db.Exec(`DELETE FROM user_addresses WHERE id = ? AND user_id = ?`, id, userID)
	return err
}
