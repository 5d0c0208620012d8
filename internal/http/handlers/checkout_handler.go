package handlers

import (
	"robomart/internal/domain"
	applog "robomart/internal/log"
	"robomart/internal/services"
	"robomart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Auth     *services.AuthService
}

func (h *CheckoutHandler) currentUser(c *fiber.Ctx) *domain.User {
	if u, _ := c.Locals("user").(*domain.User); u != nil {
		return u
	}
	if sid := c.Cookies("sid"); sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil {
			return u
		}
	}
	return nil
}

// Form renders the checkout page, or the empty-cart view when there is
// nothing to buy — without touching the order tables.
func (h *CheckoutHandler) Form(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	if cv.IsEmpty() {
		return render(c, "checkout_empty", fiber.Map{})
	}

	data := fiber.Map{"Cart": &cv}
	if u := h.currentUser(c); u != nil {
		data["User"] = u
		if addrs, err := h.Checkout.SavedAddresses(u.ID); err == nil {
			data["SavedAddresses"] = addrs
		}
	}
	return render(c, "checkout", data)
}

// Place validates the form and creates the order. On success the customer
// lands on a confirmation page carrying the WhatsApp hand-off link; on
// failure the form is redisplayed with the entered values intact.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	form := services.CheckoutForm{
		Name:         c.FormValue("name"),
		Phone:        c.FormValue("phone"),
		Email:        c.FormValue("email"),
		Address:      c.FormValue("address"),
		Pincode:      c.FormValue("pincode"),
		State:        c.FormValue("state"),
		Country:      c.FormValue("country"),
		Notes:        c.FormValue("notes"),
		SaveAddress:  c.FormValue("save_address") == "on",
		AddressLabel: c.FormValue("address_label"),
	}

	if msg := validateCheckout(&form); msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"page": "checkout", "reason": msg})
		return h.redisplay(c, sid, form, msg)
	}

	userID := ""
	if u := h.currentUser(c); u != nil {
		userID = u.ID
	}

	placed, err := h.Checkout.Place(sid, userID, form)
	if err == services.ErrEmptyCart {
		return render(c, "checkout_empty", fiber.Map{})
	}
	if err != nil {
		applog.Error(c, "checkout.place", err, nil)
		return h.redisplay(c, sid, form, "Failed to create order. Please try again.")
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_number": placed.Order.OrderNumber,
		"total":        placed.Order.Total.String(),
	})
	return render(c, "order_confirm", fiber.Map{
		"Order":        placed.Order,
		"WhatsAppLink": placed.WhatsAppLink,
	})
}

// DeleteAddress removes one of the logged-in user's saved addresses.
func (h *CheckoutHandler) DeleteAddress(c *fiber.Ctx) error {
	u := h.currentUser(c)
	if u == nil {
		return c.Redirect("/checkout")
	}
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Checkout.DeleteAddress(id, u.ID); err != nil {
		applog.Error(c, "checkout.address.delete", err, map[string]any{"id": id})
	}
	return c.Redirect("/checkout")
}

func (h *CheckoutHandler) redisplay(c *fiber.Ctx, sid string, form services.CheckoutForm, msg string) error {
	cv, err := h.Cart.View(sid)
	if err != nil || cv.IsEmpty() {
		return render(c, "checkout_empty", fiber.Map{})
	}
	c.Status(fiber.StatusBadRequest)
	return render(c, "checkout", fiber.Map{
		"Cart": &cv,
		"Form": form,
		"Err":  msg,
	})
}

func validateCheckout(form *services.CheckoutForm) string {
	var ok bool
	if form.Name, ok = validate.Name(form.Name); !ok {
		return "Please enter your name"
	}
	if form.Phone, ok = validate.Phone(form.Phone); !ok {
		return "Please enter a valid phone number"
	}
	if form.Email != "" {
		if form.Email, ok = validate.Email(form.Email); !ok {
			return "Please enter a valid email"
		}
	}
	if form.Address == "" {
		return "Please enter your delivery address"
	}
	if form.Pincode, ok = validate.Pincode(form.Pincode); !ok {
		return "Please enter a valid pincode"
	}
	if form.State == "" {
		return "Please select your state"
	}
	return ""
}
