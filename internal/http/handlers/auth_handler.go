package handlers

import (
	"time"

	"robomart/internal/log"
	"robomart/internal/services"
	"robomart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		c.Status(401)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password"})
	}

	_, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		c.Status(401)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password"})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, okEmail := validate.Email(c.FormValue("email"))
	name, okName := validate.Name(c.FormValue("name"))
	pass := c.FormValue("password")

	switch {
	case !okEmail:
		c.Status(400)
		return render(c, "register", fiber.Map{"Err": "Please enter a valid email"})
	case !okName:
		c.Status(400)
		return render(c, "register", fiber.Map{"Err": "Please enter your name"})
	case !validate.Password(pass):
		c.Status(400)
		return render(c, "register", fiber.Map{"Err": "Password needs 8+ characters with upper, lower and digit"})
	}

	if _, err := h.Auth.Register(sid, email, name, pass); err != nil {
		log.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		c.Status(400)
		return render(c, "register", fiber.Map{"Err": "Could not create the account. Is the email already registered?"})
	}

	log.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
