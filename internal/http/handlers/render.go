package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if present
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	// Store settings for header/footer (store name, contact, whatsapp)
	if s := c.Locals("settings"); s != nil {
		data["Settings"] = s
	}
	// One-shot denial/confirmation notice
	if flash := c.Cookies("flash"); flash != "" {
		data["Flash"] = flash
		c.Cookie(&fiber.Cookie{Name: "flash", Value: "", Path: "/", MaxAge: -1})
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else {
		data["CSRFToken"] = c.Cookies("csrf_")
	}
	return c.Render(tmpl, data)
}

func setFlash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{Name: "flash", Value: msg, Path: "/", MaxAge: 30})
}
