package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// placeOrder drives the public checkout to get a real order into the store.
func placeOrder(t *testing.T, app *fiber.App) (orderNumber string) {
	t.Helper()
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
		"address": {"12 MG Road"}, "pincode": {"682001"}, "state": {"Kerala"},
	}
	resp = postForm(t, app, "/checkout", form, sid)
	page := body(t, resp)
	i := strings.Index(page, "ORD-")
	if i < 0 {
		t.Fatal("no order number on the confirmation page")
	}
	return page[i : i+14]
}

func TestAdminOrdersPageAndStatusVocabulary(t *testing.T) {
	app, userRepo := newTestApp(t)
	number := placeOrder(t, app)

	_ = userRepo.BindSession("sid-staff", "u-staff")
	staff := sidCookie("sid-staff")

	// The new order shows up on the orders page.
	resp := get(t, app, "/admin/orders", staff)
	if !strings.Contains(body(t, resp), number) {
		t.Fatal("orders page missing the new order")
	}

	// Status vocabulary is enforced.
	resp = postForm(t, app, "/admin/orders/some-id/status", url.Values{"status": {"archived"}}, staff)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad status: want 400, got %d", resp.StatusCode)
	}
}

func TestAdminSettingsRoundTrip(t *testing.T) {
	app, userRepo := newTestApp(t)
	_ = userRepo.BindSession("sid-admin", "u-admin")
	admin := sidCookie("sid-admin")

	resp := postForm(t, app, "/admin/settings", url.Values{
		"store_name":      {"RoboMart Labs"},
		"whatsapp_number": {"911112223334"},
	}, admin)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("save: want 302, got %d", resp.StatusCode)
	}

	resp = get(t, app, "/admin/settings", admin)
	page := body(t, resp)
	if !strings.Contains(page, "RoboMart Labs") || !strings.Contains(page, "911112223334") {
		t.Fatal("saved settings not reflected")
	}
}

func TestAdminStaffManagement(t *testing.T) {
	app, userRepo := newTestApp(t)
	_ = userRepo.BindSession("sid-admin", "u-admin")
	admin := sidCookie("sid-admin")

	// Promote the seeded customer to staff by email.
	resp := postForm(t, app, "/admin/staff", url.Values{
		"email": {"asha@robomart.test"}, "role": {"staff"},
	}, admin)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("promote: want 302, got %d", resp.StatusCode)
	}

	resp = get(t, app, "/admin/staff", admin)
	if !strings.Contains(body(t, resp), "asha@robomart.test") {
		t.Fatal("promoted account missing from the staff page")
	}

	// Unknown emails flash instead of erroring.
	resp = postForm(t, app, "/admin/staff", url.Values{
		"email": {"ghost@robomart.test"}, "role": {"staff"},
	}, admin)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("unknown email: want 302, got %d", resp.StatusCode)
	}
}
