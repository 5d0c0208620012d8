package services

import (
	"errors"
	"strings"

	"robomart/internal/cart"
	"robomart/internal/domain"
	"robomart/internal/repos"
	"robomart/internal/whatsapp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

// Shipping is the static two-tier fee table: one rate for the store's home
// state, a flat rate for everywhere else (other states and abroad alike).
var (
	homeStateFee = decimal.NewFromInt(70)
	outsideFee   = decimal.NewFromInt(100)
)

// CheckoutForm carries the validated delivery details for an order.
type CheckoutForm struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Pincode string
	State   string
	Country string
	Notes   string

	// Save-address opt-in for logged-in customers.
	SaveAddress  bool
	AddressLabel string
}

// PlacedOrder is what the confirmation page needs: the stored order plus the
// WhatsApp hand-off link.
type PlacedOrder struct {
	Order        domain.Order
	WhatsAppLink string
}

type CheckoutService struct {
	Carts     *CartService
	Orders    *repos.OrderRepo
	Addresses *repos.AddressRepo
	Settings  *repos.SettingsRepo

	// HomeState and FallbackNumber come from config.
	HomeState      string
	FallbackNumber string

	// onAddressSaveFail observes best-effort failures; wired to the logger.
	OnAddressSaveFail func(err error)
}

// ShippingFee returns the fee for a destination. Country is only consulted
// to rule out the home-state rate for foreign addresses.
func (s *CheckoutService) ShippingFee(state, country string) decimal.Decimal {
	domestic := country == "" || strings.EqualFold(strings.TrimSpace(country), "India")
	if domestic && strings.EqualFold(strings.TrimSpace(state), s.HomeState) {
		return homeStateFee
	}
	return outsideFee
}

// Place creates the order: snapshot the cart lines, compute the grand total,
// persist, best-effort save the address, clear the cart and return the
// wa.me hand-off. The item snapshot is immutable from here on.
func (s *CheckoutService) Place(sessionID string, userID string, form CheckoutForm) (PlacedOrder, error) {
	c, err := s.Carts.View(sessionID)
	if err != nil {
		return PlacedOrder{}, err
	}
	if c.IsEmpty() {
		return PlacedOrder{}, ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	subtotal := c.Total()
	fee := s.ShippingFee(form.State, form.Country)

	o := domain.Order{
		ID:              uuid.NewString(),
		OrderNumber:     NewOrderNumber(),
		CustomerName:    form.Name,
		CustomerPhone:   form.Phone,
		CustomerEmail:   form.Email,
		ShippingAddress: formatAddress(form),
		ItemsJSON:       domain.EncodeItems(items),
		Subtotal:        subtotal,
		ShippingFee:     fee,
		Total:           subtotal.Add(fee),
		Status:          domain.StatusPending,
		Notes:           form.Notes,
		UserID:          userID,
	}
	o.WhatsAppMessage = whatsapp.Message(o)

	// Saving the address must never block order creation.
	if form.SaveAddress && userID != "" {
		label := form.AddressLabel
		if label == "" {
			label = "Home"
		}
		err := s.Addresses.Create(domain.SavedAddress{
			ID:      uuid.NewString(),
			UserID:  userID,
			Label:   label,
			Address: form.Address,
			Phone:   form.Phone,
			Pincode: form.Pincode,
		})
		if err != nil && s.OnAddressSaveFail != nil {
			s.OnAddressSaveFail(err)
		}
	}

	if err := s.Orders.Create(o); err != nil {
		return PlacedOrder{}, err
	}

	_ = s.Carts.Clear(sessionID)

	return PlacedOrder{
		Order:        o,
		WhatsAppLink: whatsapp.Link(s.whatsAppNumber(), o.WhatsAppMessage),
	}, nil
}

// SavedAddresses lists the user's addresses for checkout prefill.
func (s *CheckoutService) SavedAddresses(userID string) ([]domain.SavedAddress, error) {
	if userID == "" {
		return nil, nil
	}
	return s.Addresses.ListByUser(userID)
}

func (s *CheckoutService) DeleteAddress(id, userID string) error {
	return s.Addresses.Delete(id, userID)
}

func (s *CheckoutService) whatsAppNumber() string {
	if n, err := s.Settings.Get("whatsapp_number"); err == nil && n != "" {
		return n
	}
	return s.FallbackNumber
}

// NewOrderNumber issues a collision-resistant order number. Timestamp-based
// numbers collide under concurrent submissions, so the token is random.
func NewOrderNumber() string {
	tok := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return "ORD-" + tok
}

func formatAddress(form CheckoutForm) string {
	parts := []string{form.Address, form.State, form.Pincode}
	if form.Country != "" && !strings.EqualFold(form.Country, "India") {
		parts = append(parts, form.Country)
	}
	return strings.Join(parts, ", ")
}

// CartView backs the checkout page's order-summary card.
func (s *CheckoutService) CartView(sessionID string) (cart.Cart, error) {
	return s.Carts.View(sessionID)
}
