package handlers

import (
	"robomart/internal/domain"
	applog "robomart/internal/log"
	"robomart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireStaff admits staff and admin to the admin area; customers and
// anonymous visitors are bounced home with a denial notice. This is the UX
// layer of the gate; the store-level checks remain authoritative.
func RequireStaff(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		u, err := auth.CurrentUser(sid)
		if err != nil || !u.IsStaff() {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			setFlash(c, "You don't have access to the admin area")
			return c.Redirect("/")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin guards settings and staff management, which staff cannot see.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := c.Locals("user").(*domain.User)
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin.only", nil)
			setFlash(c, "Admin access required")
			return c.Redirect("/admin")
		}
		return c.Next()
	}
}

// RequireUser enforces a logged-in session; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
