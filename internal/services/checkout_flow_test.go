package services_test

import (
	"strings"
	"testing"

	"robomart/internal/cart"
	"robomart/internal/repos"
	"robomart/internal/services"
)

type checkoutEnv struct {
	Prods    *repos.ProductRepo
	Orders   *repos.OrderRepo
	Carts    *services.CartService
	Checkout *services.CheckoutService
}

// memdb wires repos and services over a fresh seeded in-memory store.
func memdb(t *testing.T) *checkoutEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	prods := repos.NewProductRepo(db)
	carts := services.NewCartService(cart.NewMemoryAdapter(), prods)
	return &checkoutEnv{
		Prods:  prods,
		Orders: repos.NewOrderRepo(db),
		Carts:  carts,
		Checkout: &services.CheckoutService{
			Carts:          carts,
			Orders:         repos.NewOrderRepo(db),
			Addresses:      repos.NewAddressRepo(db),
			Settings:       repos.NewSettingsRepo(db),
			HomeState:      "Kerala",
			FallbackNumber: "919999999999",
		},
	}
}

func keralaForm() services.CheckoutForm {
	return services.CheckoutForm{
		Name:    "Asha",
		Phone:   "9876543210",
		Address: "12 MG Road, Kochi",
		Pincode: "682001",
		State:   "Kerala",
	}
}

func TestShippingFeeTable(t *testing.T) {
	d := memdb(t)

	cases := []struct {
		state, country string
		want           string
	}{
		{"Kerala", "", "70"},
		{"kerala", "India", "70"}, // state match is case-insensitive
		{"Maharashtra", "", "100"},
		{"Kerala", "USA", "100"}, // foreign address never gets the home rate
		{"", "Germany", "100"},
	}
	for _, tc := range cases {
		got := d.Checkout.ShippingFee(tc.state, tc.country)
		if got.String() != tc.want {
			t.Fatalf("fee(%q,%q) = %s, want %s", tc.state, tc.country, got, tc.want)
		}
	}
}

func TestPlaceOrderFullFlow(t *testing.T) {
	d := memdb(t)
	sid := "sess-1"

	// Seeded line follower kit: price 1499, stock 12.
	if err := d.Carts.Add(sid, "prd-linebot", 2); err != nil {
		t.Fatal(err)
	}

	placed, err := d.Checkout.Place(sid, "", keralaForm())
	if err != nil {
		t.Fatal(err)
	}

	o := placed.Order
	if !strings.HasPrefix(o.OrderNumber, "ORD-") || len(o.OrderNumber) != 14 {
		t.Fatalf("bad order number: %q", o.OrderNumber)
	}
	if o.Subtotal.String() != "2998" || o.ShippingFee.String() != "70" || o.Total.String() != "3068" {
		t.Fatalf("bad totals: %s + %s = %s", o.Subtotal, o.ShippingFee, o.Total)
	}
	if o.Status != "pending" {
		t.Fatalf("want pending, got %q", o.Status)
	}
	items := o.Items()
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Price.String() != "1499" {
		t.Fatalf("bad snapshot: %+v", items)
	}

	// The link uses the stored store number, not the fallback.
	if !strings.HasPrefix(placed.WhatsAppLink, "https://wa.me/919876543210?text=") {
		t.Fatalf("bad link: %s", placed.WhatsAppLink)
	}
	if o.WhatsAppMessage == "" || !strings.Contains(o.WhatsAppMessage, o.OrderNumber) {
		t.Fatal("message not frozen on the order")
	}

	// Order persisted and cart cleared.
	stored, err := d.Orders.GetByNumber(o.OrderNumber)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Total.String() != "3068" {
		t.Fatalf("stored total %s", stored.Total)
	}
	cv, err := d.Carts.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if !cv.IsEmpty() {
		t.Fatalf("cart should be empty after checkout: %+v", cv.Items)
	}
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	d := memdb(t)
	if _, err := d.Checkout.Place("sess-empty", "", keralaForm()); err != services.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestPriceFrozenAgainstLaterEdits(t *testing.T) {
	d := memdb(t)
	sid := "sess-1"

	if err := d.Carts.Add(sid, "prd-ultra", 1); err != nil {
		t.Fatal(err)
	}
	placed, err := d.Checkout.Place(sid, "", keralaForm())
	if err != nil {
		t.Fatal(err)
	}

	// Reprice the product; the stored snapshot must not move.
	p, err := d.Prods.Get("prd-ultra")
	if err != nil {
		t.Fatal(err)
	}
	p.Price = p.Price.Add(p.Price)
	if err := d.Prods.Update(p); err != nil {
		t.Fatal(err)
	}

	stored, err := d.Orders.GetByNumber(placed.Order.OrderNumber)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Items()[0].Price.String() != "89" {
		t.Fatalf("snapshot moved: %s", stored.Items()[0].Price)
	}
}

func TestPlaceSavesAddressForLoggedInUser(t *testing.T) {
	d := memdb(t)
	sid := "sess-1"

	if err := d.Carts.Add(sid, "prd-ultra", 1); err != nil {
		t.Fatal(err)
	}
	form := keralaForm()
	form.SaveAddress = true
	if _, err := d.Checkout.Place(sid, "u-asha", form); err != nil {
		t.Fatal(err)
	}

	addrs, err := d.Checkout.SavedAddresses("u-asha")
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 1 || addrs[0].Label != "Home" || addrs[0].Pincode != "682001" {
		t.Fatalf("bad saved addresses: %+v", addrs)
	}
}

func TestAddRespectsStockGate(t *testing.T) {
	d := memdb(t)

	// prd-armkit seeds with zero stock.
	if err := d.Carts.Add("sess-1", "prd-armkit", 1); err != services.ErrOutOfStock {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
	if err := d.Carts.Add("sess-1", "prd-nope", 1); err != services.ErrProductGone {
		t.Fatalf("want ErrProductGone, got %v", err)
	}
}

func TestNewOrderNumberShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		n := services.NewOrderNumber()
		if len(n) != 14 || !strings.HasPrefix(n, "ORD-") || n != strings.ToUpper(n) {
			t.Fatalf("bad number: %q", n)
		}
		if seen[n] {
			t.Fatalf("duplicate number: %q", n)
		}
		seen[n] = true
	}
}
