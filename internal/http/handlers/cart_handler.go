package handlers

import (
	applog "robomart/internal/log"
	"robomart/internal/services"
	"robomart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": &cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(sid, productID, qty); err != nil {
		switch err {
		case services.ErrOutOfStock, services.ErrProductGone:
			setFlash(c, "That product is not available right now")
			return c.Redirect("/cart")
		}
		applog.Error(c, "cart.add", err, map[string]any{"product": productID})
		return c.Status(500).SendString("could not add to cart")
	}
	return c.Redirect("/cart")
}

// Update sets a line's quantity; zero removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := 0
	if raw := c.FormValue("qty"); raw != "" && raw != "0" {
		qty = validate.Qty(raw)
	}
	if err := h.Cart.SetQuantity(sid, productID, qty); err != nil {
		applog.Error(c, "cart.update", err, map[string]any{"product": productID})
		return c.Status(500).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"product": productID})
		return c.Status(500).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear", err, nil)
		return c.Status(500).SendString("could not clear cart")
	}
	return c.Redirect("/cart")
}
