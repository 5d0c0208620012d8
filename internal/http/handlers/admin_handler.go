package handlers

import (
	"robomart/internal/domain"
	"robomart/internal/invoice"
	applog "robomart/internal/log"
	"robomart/internal/repos"
	"robomart/internal/services"
	"robomart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Dash     *services.DashboardService
	Orders   *repos.OrderRepo
	Settings *services.SettingsService
	Users    *repos.UserRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Dash.Stats()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": stats})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords, "Statuses": []string{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusDispatched,
		domain.StatusDelivered, domain.StatusCancelled,
	}})
}

// POST /admin/orders/:id/status — any status may move to any other.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status, okStatus := validate.Status(c.FormValue("status"))
	if !okID || !okStatus {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// GET /admin/orders/:id/invoice — standalone printable document.
func (h *AdminHandler) Invoice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	settings, _ := h.Settings.All()
	doc, err := invoice.Render(o, settings["store_name"], settings["address"])
	if err != nil {
		applog.Error(c, "admin.invoice.render", err, map[string]any{"order_id": id})
		return c.Status(500).SendString("could not render invoice")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(doc)
}

// GET /admin/settings (admin only)
func (h *AdminHandler) SettingsPage(c *fiber.Ctx) error {
	settings, err := h.Settings.List()
	if err != nil {
		applog.Error(c, "admin.settings.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load settings"})
	}
	values, err := h.Settings.All()
	if err != nil {
		applog.Error(c, "admin.settings.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load settings"})
	}
	return render(c, "admin_settings", fiber.Map{"Items": settings, "Settings": values})
}

// POST /admin/settings
func (h *AdminHandler) SaveSettings(c *fiber.Ctx) error {
	values := map[string]string{}
	for _, key := range []string{"store_name", "contact_email", "whatsapp_number", "website", "address"} {
		if v := c.FormValue(key); v != "" {
			values[key] = v
		}
	}
	if err := h.Settings.Save(values); err != nil {
		applog.Error(c, "admin.settings.save.fail", err, nil)
		return c.Status(400).SendString("could not save settings")
	}
	applog.Audit(c, "admin.settings.save", map[string]any{"keys": len(values)})
	return c.Redirect("/admin/settings")
}

// GET /admin/staff (admin only)
func (h *AdminHandler) StaffPage(c *fiber.Ctx) error {
	staff, err := h.Users.ListStaff()
	if err != nil {
		applog.Error(c, "admin.staff.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load staff"})
	}
	return render(c, "admin_staff", fiber.Map{"Staff": staff})
}

// POST /admin/staff — grant or change a role by account email.
func (h *AdminHandler) SaveStaff(c *fiber.Ctx) error {
	email, okEmail := validate.Email(c.FormValue("email"))
	role := c.FormValue("role")
	if !okEmail || (role != domain.RoleAdmin && role != domain.RoleStaff && role != domain.RoleCustomer) {
		return c.Status(400).SendString("invalid email or role")
	}
	u, err := h.Users.ByEmail(email)
	if err != nil {
		setFlash(c, "No account with that email")
		return c.Redirect("/admin/staff")
	}
	if err := h.Users.SetRole(uuid.NewString(), u.ID, role); err != nil {
		applog.Error(c, "admin.staff.save.fail", err, map[string]any{"email": email})
		return c.Status(400).SendString("could not save role")
	}
	applog.Audit(c, "admin.staff.save", map[string]any{"email": email, "role": role})
	return c.Redirect("/admin/staff")
}

// POST /admin/staff/:id/delete — drop the role row; the account stays.
func (h *AdminHandler) DeleteStaff(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Users.DeleteRole(id); err != nil {
		applog.Error(c, "admin.staff.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not remove role")
	}
	applog.Audit(c, "admin.staff.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/staff")
}
