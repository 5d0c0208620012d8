package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"robomart/internal/config"
	"robomart/internal/http/handlers"
	"robomart/internal/repos"
	"robomart/internal/services"
)

// newTestApp wires the full handler set over a seeded in-memory store, with
// the same route shape as main minus the rate limiter and CSRF check.
func newTestApp(t *testing.T) (*fiber.App, *repos.UserRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	auth := &services.AuthService{Users: userRepo}
	cfg := config.Config{HomeState: "Kerala", WhatsAppNumber: "919876543210"}
	deps := handlers.NewDeps(db, cfg, auth)

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/products/:slug", deps.CatalogHandler.ProductDetail)
	app.Get("/api/v1/search", deps.SearchHandler.Search)
	app.Get("/track", deps.TrackHandler.Track)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Get("/checkout", deps.CheckoutHandler.Form)
	app.Post("/checkout", deps.CheckoutHandler.Place)

	admin := app.Group("/admin", handlers.RequireStaff(auth))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/orders/:id/invoice", deps.AdminHandler.Invoice)
	admin.Get("/settings", handlers.RequireAdmin(), deps.AdminHandler.SettingsPage)
	admin.Post("/settings", handlers.RequireAdmin(), deps.AdminHandler.SaveSettings)
	admin.Get("/staff", handlers.RequireAdmin(), deps.AdminHandler.StaffPage)
	admin.Post("/staff", handlers.RequireAdmin(), deps.AdminHandler.SaveStaff)

	return app, userRepo
}

func get(t *testing.T, app *fiber.App, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func sidCookie(val string) *http.Cookie {
	return &http.Cookie{Name: "sid", Value: val}
}

func TestAdminAreaGates(t *testing.T) {
	app, userRepo := newTestApp(t)

	// Anonymous visitors bounce home.
	resp := get(t, app, "/admin")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous: want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("anonymous: want redirect to /, got %q", loc)
	}

	// Customers are denied the same way.
	_ = userRepo.BindSession("sid-cust", "u-asha")
	resp = get(t, app, "/admin", sidCookie("sid-cust"))
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("customer: want 302, got %d", resp.StatusCode)
	}

	// Staff see the dashboard and orders...
	_ = userRepo.BindSession("sid-staff", "u-staff")
	for _, path := range []string{"/admin", "/admin/orders"} {
		resp = get(t, app, path, sidCookie("sid-staff"))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("staff %s: want 200, got %d", path, resp.StatusCode)
		}
	}
	// ...but not the admin-only pages.
	for _, path := range []string{"/admin/settings", "/admin/staff"} {
		resp = get(t, app, path, sidCookie("sid-staff"))
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("staff %s: want 302, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/admin" {
			t.Fatalf("staff %s: want redirect to /admin, got %q", path, loc)
		}
	}

	// Admins see everything.
	_ = userRepo.BindSession("sid-admin", "u-admin")
	for _, path := range []string{"/admin", "/admin/orders", "/admin/settings", "/admin/staff"} {
		resp = get(t, app, path, sidCookie("sid-admin"))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("admin %s: want 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestSearchEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/api/v1/search?q=line+follower")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var results []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Price string `json:"price"`
	}
	if err := json.Unmarshal([]byte(body(t, resp)), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "prd-linebot" || results[0].Price != "1499.00" {
		t.Fatalf("bad results: %+v", results)
	}

	// A blank query answers an empty list, not an error.
	resp = get(t, app, "/api/v1/search?q=")
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(body(t, resp)) != "[]" {
		t.Fatalf("blank query: status %d", resp.StatusCode)
	}

	// Disallowed characters are rejected.
	resp = get(t, app, "/api/v1/search?q=%3Cscript%3E")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad query: want 400, got %d", resp.StatusCode)
	}
}

func TestTrackPageOutcomes(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/track")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bare form: want 200, got %d", resp.StatusCode)
	}

	resp = get(t, app, "/track?number=ORD-DOESNOTEX")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unknown number: want 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body(t, resp), "No order found") {
		t.Fatal("unknown number should show the not-found notice")
	}
}

func TestCartAddAndStockGate(t *testing.T) {
	app, _ := newTestApp(t)

	// Adding an in-stock product lands on the cart page.
	resp := postForm(t, app, "/cart", url.Values{"productId": {"prd-linebot"}, "qty": {"2"}})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/cart" {
		t.Fatalf("add: status %d location %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	var sid *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			sid = ck
		}
	}
	if sid == nil {
		t.Fatal("no session cookie issued")
	}

	resp = get(t, app, "/cart", sid)
	page := body(t, resp)
	if !strings.Contains(page, "Line Follower Robot Kit") || !strings.Contains(page, "2998") {
		t.Fatal("cart page missing the added line")
	}

	// The out-of-stock kit is refused with a flash, not an error page.
	resp = postForm(t, app, "/cart", url.Values{"productId": {"prd-armkit"}, "qty": {"1"}}, sid)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("out of stock: want 302, got %d", resp.StatusCode)
	}
	flashed := false
	for _, ck := range resp.Cookies() {
		if ck.Name == "flash" && ck.Value != "" {
			flashed = true
		}
	}
	if !flashed {
		t.Fatal("expected a flash cookie on the stock refusal")
	}
}

func TestCheckoutEmptyCartShortCircuits(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/checkout")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body(t, resp), "Your cart is empty") {
		t.Fatalf("empty checkout: status %d", resp.StatusCode)
	}

	// Posting a valid form with no cart never creates an order.
	form := url.Values{
		"name": {"Asha"}, "phone": {"9876543210"},
		"address": {"12 MG Road"}, "pincode": {"682001"}, "state": {"Kerala"},
	}
	resp = postForm(t, app, "/checkout", form)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body(t, resp), "Your cart is empty") {
		t.Fatalf("empty place: status %d", resp.StatusCode)
	}
}

func TestCheckoutValidationRedisplaysForm(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postForm(t, app, "/cart", url.Values{"productId": {"prd-ultra"}, "qty": {"1"}})
	var sid *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			sid = ck
		}
	}
	if sid == nil {
		t.Fatal("no session cookie issued")
	}

	form := url.Values{
		"name": {"Asha"}, "phone": {"9876543210"},
		"address": {"12 MG Road"}, "pincode": {"not-a-pin"}, "state": {"Kerala"},
	}
	resp = postForm(t, app, "/checkout", form, sid)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	page := body(t, resp)
	if !strings.Contains(page, "valid pincode") {
		t.Fatal("missing field error message")
	}
	// Entered values survive the round trip.
	if !strings.Contains(page, `value="Asha"`) || !strings.Contains(page, `value="9876543210"`) {
		t.Fatal("form values not redisplayed")
	}
}

func TestCheckoutPlaceRendersConfirmation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postForm(t, app, "/cart", url.Values{"productId": {"prd-linebot"}, "qty": {"1"}})
	var sid *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			sid = ck
		}
	}
	if sid == nil {
		t.Fatal("no session cookie issued")
	}

	form := url.Values{
		"name": {"Asha"}, "phone": {"9876543210"},
		"address": {"12 MG Road"}, "pincode": {"682001"}, "state": {"Kerala"},
	}
	resp = postForm(t, app, "/checkout", form, sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	page := body(t, resp)
	if !strings.Contains(page, "ORD-") {
		t.Fatal("confirmation missing the order number")
	}
	if !strings.Contains(page, "wa.me/919876543210") {
		t.Fatal("confirmation missing the WhatsApp link")
	}

	// The cart is spent.
	resp = get(t, app, "/cart", sid)
	if !strings.Contains(body(t, resp), "Your cart is empty") {
		t.Fatal("cart not cleared after checkout")
	}
}

func TestProductDetail404(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/products/ultrasonic-distance-sensor")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body(t, resp), "Ultrasonic Distance Sensor") {
		t.Fatal("detail page missing product name")
	}

	resp = get(t, app, "/products/not-a-product")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}
