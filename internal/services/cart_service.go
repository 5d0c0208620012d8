package services

import (
	"database/sql"
	"errors"

	"robomart/internal/cart"
	"robomart/internal/repos"
)

var (
	ErrProductGone = errors.New("product not available")
	ErrOutOfStock  = errors.New("product out of stock")
)

// CartService applies cart transitions for a session and persists the result
// through the adapter.
type CartService struct {
	Store cart.Adapter
	Prods *repos.ProductRepo
}

func NewCartService(store cart.Adapter, prods *repos.ProductRepo) *CartService {
	return &CartService{Store: store, Prods: prods}
}

// Add puts qty of the product in the session cart. The stock gate lives
// here: with no client state, the server re-checks what the product page's
// disabled button enforces.
func (s *CartService) Add(sessionID, productID string, qty int) error {
	p, err := s.Prods.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrProductGone
		}
		return err
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}

	c, err := s.Store.Load(sessionID)
	if err != nil {
		return err
	}
	image := ""
	if imgs := p.Images(); len(imgs) > 0 {
		image = imgs[0]
	}
	c.Add(cart.Item{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty, Image: image})
	return s.Store.Save(sessionID, c)
}

func (s *CartService) SetQuantity(sessionID, productID string, qty int) error {
	c, err := s.Store.Load(sessionID)
	if err != nil {
		return err
	}
	c.SetQuantity(productID, qty)
	return s.Store.Save(sessionID, c)
}

func (s *CartService) Remove(sessionID, productID string) error {
	c, err := s.Store.Load(sessionID)
	if err != nil {
		return err
	}
	c.Remove(productID)
	return s.Store.Save(sessionID, c)
}

func (s *CartService) Clear(sessionID string) error {
	return s.Store.Save(sessionID, cart.Cart{})
}

func (s *CartService) View(sessionID string) (cart.Cart, error) {
	return s.Store.Load(sessionID)
}
